package video

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/victorrosario/videocatalog-backend/pkg/db/models"
	pkgerrors "github.com/victorrosario/videocatalog-backend/pkg/errors"
	"github.com/victorrosario/videocatalog-backend/pkg/pagination"
)

// Repository exposes video read paths. All writes go through the saver.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) scope(ctx context.Context, withTrashed bool) *gorm.DB {
	q := r.db.WithContext(ctx)
	if withTrashed {
		q = q.Unscoped()
	}
	unscoped := func(db *gorm.DB) *gorm.DB { return db.Unscoped() }
	return q.Preload("Categories", unscoped).Preload("Genders", unscoped)
}

// FindByID loads one video with its categories and genders.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Video, error) {
	var video models.Video
	err := r.scope(ctx, withTrashed).First(&video, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("video %s not found", id))
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: loading video")
	}
	return &video, nil
}

// List returns one page of videos plus the total row count.
func (r *Repository) List(ctx context.Context, params pagination.Params, withTrashed bool) ([]models.Video, int64, error) {
	params = params.Normalize()

	var total int64
	base := r.db.WithContext(ctx).Model(&models.Video{})
	if withTrashed {
		base = base.Unscoped()
	}
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: counting videos")
	}

	var videos []models.Video
	err := r.scope(ctx, withTrashed).
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&videos).Error
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: listing videos")
	}
	return videos, total, nil
}
