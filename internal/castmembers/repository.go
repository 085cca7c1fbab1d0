package castmember

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

// Repository exposes cast member persistence.
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

// FindByID loads one cast member. withTrashed includes soft-deleted rows.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID, withTrashed bool) (*models.CastMember, error) {
	var member models.CastMember
	err := r.scope(ctx, withTrashed).First(&member, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("cast member %s not found", id))
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: loading cast member")
	}
	return &member, nil
}

// List returns one page of cast members plus the total row count.
func (r *Repository) List(ctx context.Context, params pagination.Params, withTrashed bool) ([]models.CastMember, int64, error) {
	params = params.Normalize()

	var total int64
	if err := r.scope(ctx, withTrashed).Model(&models.CastMember{}).Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: counting cast members")
	}

	var members []models.CastMember
	err := r.scope(ctx, withTrashed).
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&members).Error
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: listing cast members")
	}
	return members, total, nil
}

// Create inserts the cast member.
func (r *Repository) Create(ctx context.Context, member *models.CastMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: inserting cast member")
	}
	return nil
}

// Update persists every column of the cast member.
func (r *Repository) Update(ctx context.Context, member *models.CastMember) error {
	if err := r.db.WithContext(ctx).Save(member).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: updating cast member")
	}
	return nil
}

// Delete soft deletes the cast member.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.CastMember{}, "id = ?", id)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "db: deleting cast member")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("cast member %s not found", id))
	}
	return nil
}
