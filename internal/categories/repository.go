package category

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

// Repository exposes category persistence.
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
	return q
}

// FindByID loads one category. withTrashed includes soft-deleted rows.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.Category, error) {
	var category models.Category
	err := r.scope(ctx, withTrashed).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("category %s not found", id))
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: loading category")
	}
	return &category, nil
}

// List returns one page of categories plus the total row count.
func (r *Repository) List(ctx context.Context, params pagination.Params, withTrashed bool) ([]models.Category, int64, error) {
	params = params.Normalize()

	var total int64
	base := r.scope(ctx, withTrashed).Model(&models.Category{})
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: counting categories")
	}

	var categories []models.Category
	err := r.scope(ctx, withTrashed).
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&categories).Error
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: listing categories")
	}
	return categories, total, nil
}

// Create inserts the category.
func (r *Repository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: inserting category")
	}
	return nil
}

// Update persists every column of the category.
func (r *Repository) Update(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: updating category")
	}
	return nil
}

// Delete soft deletes the category.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "db: deleting category")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("category %s not found", id))
	}
	return nil
}
