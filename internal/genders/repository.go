package gender

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

// Repository exposes gender read paths. Writes go through the saver so that
// relation sync stays inside the row's transaction.
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
	// Attached categories stay visible even after they are trashed.
	return q.Preload("Categories", func(db *gorm.DB) *gorm.DB {
		return db.Unscoped()
	})
}

// FindByID loads one gender with its categories.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Gender, error) {
	var gender models.Gender
	err := r.scope(ctx, withTrashed).First(&gender, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("gender %s not found", id))
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: loading gender")
	}
	return &gender, nil
}

// List returns one page of genders plus the total row count.
func (r *Repository) List(ctx context.Context, params pagination.Params, withTrashed bool) ([]models.Gender, int64, error) {
	params = params.Normalize()

	var total int64
	base := r.db.WithContext(ctx).Model(&models.Gender{})
	if withTrashed {
		base = base.Unscoped()
	}
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: counting genders")
	}

	var genders []models.Gender
	err := r.scope(ctx, withTrashed).
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&genders).Error
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: listing genders")
	}
	return genders, total, nil
}
