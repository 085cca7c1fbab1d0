package video

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	pkgerrors "github.com/victorrosario/videocatalog-backend/pkg/errors"
	"github.com/victorrosario/videocatalog-backend/pkg/logger"
	"github.com/victorrosario/videocatalog-backend/pkg/pagination"
	"github.com/victorrosario/videocatalog-backend/pkg/redis"
)

// CachedService decorates a video service with a Redis read-through cache on
// the detail endpoint. Concurrent misses for the same id are collapsed into
// one database load. Cache failures degrade to direct reads.
type CachedService struct {
	inner Service
	cache *redis.Client
	ttl   time.Duration
	logg  *logger.Logger
	group singleflight.Group
}

// NewCachedService wraps inner. A nil cache disables caching entirely.
func NewCachedService(inner Service, cache *redis.Client, ttl time.Duration, logg *logger.Logger) *CachedService {
	return &CachedService{inner: inner, cache: cache, ttl: ttl, logg: logg}
}

func videoCacheKey(id uuid.UUID) string {
	return redis.Key("video", id.String())
}

func (s *CachedService) Create(ctx context.Context, input CreateVideoInput) (*VideoDTO, error) {
	return s.inner.Create(ctx, input)
}

func (s *CachedService) Update(ctx context.Context, id uuid.UUID, input UpdateVideoInput) (*VideoDTO, error) {
	dto, err := s.inner.Update(ctx, id, input)
	if err != nil {
		// The row commits before uploads run, so a storage failure still
		// leaves new values in the database. Drop the cached copy.
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeStorage {
			s.invalidate(ctx, id)
		}
		return nil, err
	}
	s.invalidate(ctx, id)
	return dto, nil
}

func (s *CachedService) Get(ctx context.Context, id uuid.UUID, withTrashed bool) (*VideoDTO, error) {
	// Trashed lookups are rare admin reads; keep them off the cache.
	if s.cache == nil || withTrashed {
		return s.inner.Get(ctx, id, withTrashed)
	}

	key := videoCacheKey(id)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var dto VideoDTO
		if err := json.Unmarshal(data, &dto); err == nil {
			return &dto, nil
		}
		s.invalidate(ctx, id)
	} else if !errors.Is(err, redis.ErrCacheMiss) && s.logg != nil {
		s.logg.Warn(ctx, "video cache read failed: "+err.Error())
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		dto, err := s.inner.Get(ctx, id, false)
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(dto); err == nil {
			if err := s.cache.Set(ctx, key, data, s.ttl); err != nil && s.logg != nil {
				s.logg.Warn(ctx, "video cache write failed: "+err.Error())
			}
		}
		return dto, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*VideoDTO), nil
}

func (s *CachedService) List(ctx context.Context, params pagination.Params, withTrashed bool) ([]VideoDTO, int64, error) {
	return s.inner.List(ctx, params, withTrashed)
}

func (s *CachedService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.inner.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CachedService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, videoCacheKey(id)); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "video cache invalidation failed: "+err.Error())
	}
}
