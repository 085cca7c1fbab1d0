package catalog

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/victorrosario/videocatalog-backend/internal/uploads"
	"github.com/victorrosario/videocatalog-backend/pkg/db"
	pkgerrors "github.com/victorrosario/videocatalog-backend/pkg/errors"
	"github.com/victorrosario/videocatalog-backend/pkg/logger"
	"github.com/victorrosario/videocatalog-backend/pkg/metrics"
)

// Saver persists file-bearing entities across the relational store and the
// blob store. Database writes (row plus join table rows) happen inside one
// transaction; uploads happen after commit, with compensating deletes when a
// later upload fails. A crash between commit and upload completion can leave
// a row whose file columns point at missing objects; that window is accepted
// and repaired out of band.
type Saver struct {
	db    *db.Client
	store BlobStore
	logg  *logger.Logger
	mets  *metrics.UploadMetrics
}

// NewSaver wires the saver. logg and mets may be nil.
func NewSaver(client *db.Client, store BlobStore, logg *logger.Logger, mets *metrics.UploadMetrics) *Saver {
	return &Saver{db: client, store: store, logg: logg, mets: mets}
}

// Create inserts a new entity row with a fresh UUID, syncs its declared
// relations in the same transaction, then uploads the extracted files into a
// directory named after the new id. If any upload fails, already-uploaded
// objects are deleted and the error is returned; the committed row remains.
func (s *Saver) Create(ctx context.Context, cfg Config, attrs map[string]any) (uuid.UUID, error) {
	cleaned, files := uploads.Extract(attrs, cfg.FileFields)
	relations, err := takeRelationSets(cleaned, cfg.Relations)
	if err != nil {
		return uuid.Nil, err
	}
	for _, rel := range cfg.Relations {
		ids, ok := relations[rel.RequestKey]
		if !ok {
			continue
		}
		if err := ValidateRelationIDs(ctx, s.db.DB(), rel, ids); err != nil {
			return uuid.Nil, err
		}
	}

	id := uuid.New()
	now := time.Now().UTC()
	cleaned["id"] = id.String()
	cleaned["created_at"] = now
	cleaned["updated_at"] = now

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Table(cfg.Table).Create(cleaned).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("db: inserting into %s", cfg.Table))
		}
		return s.syncRelations(tx, cfg, id, relations)
	})
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.uploadAll(ctx, id.String(), files); err != nil {
		return id, err
	}
	return id, nil
}

// Update rewrites the provided attributes of an existing, non-deleted entity
// and syncs any relation keys present in attrs; absent keys are left alone.
// New files are uploaded after commit, and the objects they replace are
// removed best-effort once every upload succeeded.
func (s *Saver) Update(ctx context.Context, cfg Config, id uuid.UUID, attrs map[string]any) error {
	current := map[string]any{}
	err := s.db.DB().WithContext(ctx).
		Table(cfg.Table).
		Where("id = ? AND deleted_at IS NULL", id.String()).
		Take(&current).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s %s not found", cfg.Table, id))
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("db: loading from %s", cfg.Table))
	}
	oldFiles := fileColumnValues(current, cfg.FileFields)

	cleaned, files := uploads.Extract(attrs, cfg.FileFields)
	relations, err := takeRelationSets(cleaned, cfg.Relations)
	if err != nil {
		return err
	}
	for _, rel := range cfg.Relations {
		ids, ok := relations[rel.RequestKey]
		if !ok {
			continue
		}
		if err := ValidateRelationIDs(ctx, s.db.DB(), rel, ids); err != nil {
			return err
		}
	}

	delete(cleaned, "id")
	cleaned["updated_at"] = time.Now().UTC()

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		res := tx.Table(cfg.Table).Where("id = ?", id.String()).Updates(cleaned)
		if res.Error != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, fmt.Sprintf("db: updating %s", cfg.Table))
		}
		return s.syncRelations(tx, cfg, id, relations)
	})
	if err != nil {
		return err
	}

	if err := s.uploadAll(ctx, id.String(), files); err != nil {
		return err
	}

	s.deleteReplacedFiles(ctx, id.String(), oldFiles, files)
	return nil
}

// Destroy soft deletes the entity. Join table rows and uploaded objects are
// kept so the row can be restored with its relations and files intact.
func (s *Saver) Destroy(ctx context.Context, cfg Config, id uuid.UUID) error {
	now := time.Now().UTC()
	res := s.db.DB().WithContext(ctx).
		Table(cfg.Table).
		Where("id = ? AND deleted_at IS NULL", id.String()).
		Updates(map[string]any{"deleted_at": now, "updated_at": now})
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, fmt.Sprintf("db: deleting from %s", cfg.Table))
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s %s not found", cfg.Table, id))
	}
	return nil
}

func (s *Saver) syncRelations(tx *gorm.DB, cfg Config, id uuid.UUID, relations map[string][]uuid.UUID) error {
	for _, rel := range cfg.Relations {
		ids, ok := relations[rel.RequestKey]
		if !ok {
			continue
		}
		if err := syncRelation(tx, rel, id, ids); err != nil {
			return err
		}
	}
	return nil
}

func (s *Saver) uploadAll(ctx context.Context, dir string, files []uploads.File) error {
	for i, file := range files {
		if err := s.putFile(ctx, dir, file); err != nil {
			s.mets.IncUpload("failure")
			s.compensate(ctx, dir, files[:i])
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, fmt.Sprintf("storing %s", file.Field))
		}
		s.mets.IncUpload("success")
	}
	return nil
}

func (s *Saver) putFile(ctx context.Context, dir string, file uploads.File) error {
	reader, err := file.Payload.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", file.Field, err)
	}
	defer reader.Close()
	return s.store.Put(ctx, dir, file.ObjectName, reader, file.Payload.Size, file.Payload.ContentType)
}

// compensate removes the objects uploaded before the failure so a rolled-back
// create/update leaves no orphans behind.
func (s *Saver) compensate(ctx context.Context, dir string, uploaded []uploads.File) {
	var errs error
	for _, file := range uploaded {
		if err := s.store.Delete(ctx, dir, file.ObjectName); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("removing %s/%s: %w", dir, file.ObjectName, err))
			continue
		}
		s.mets.IncCompensation()
	}
	if errs != nil && s.logg != nil {
		s.logg.Error(ctx, "compensating deletes failed, objects may be orphaned", errs)
	}
}

// deleteReplacedFiles removes the previous object of every field that just
// received a new file. Failures are logged, never surfaced: the update itself
// already succeeded.
func (s *Saver) deleteReplacedFiles(ctx context.Context, dir string, oldFiles map[string]string, uploaded []uploads.File) {
	var errs error
	for _, file := range uploaded {
		old, ok := oldFiles[file.Field]
		if !ok || old == "" || old == file.ObjectName {
			continue
		}
		if err := s.store.Delete(ctx, dir, old); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("removing %s/%s: %w", dir, old, err))
			continue
		}
		s.mets.IncStaleDelete()
	}
	if errs != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithEntityID(ctx, dir), "stale file cleanup failed: "+errs.Error())
	}
}

func fileColumnValues(row map[string]any, fileFields []string) map[string]string {
	out := make(map[string]string, len(fileFields))
	for _, field := range fileFields {
		switch v := row[field].(type) {
		case string:
			if v != "" {
				out[field] = v
			}
		case []byte:
			if len(v) > 0 {
				out[field] = string(v)
			}
		}
	}
	return out
}
