package gender

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/victorrosario/videocatalog-backend/internal/catalog"
	"github.com/victorrosario/videocatalog-backend/pkg/db/models"
	"github.com/victorrosario/videocatalog-backend/pkg/pagination"
)

// SaverConfig declares how the saver persists genders: no file fields, one
// relation to categories through the category_gender join table.
func SaverConfig() catalog.Config {
	return catalog.Config{
		Table: "genders",
		Relations: []catalog.RelationSpec{{
			RequestKey:    "categories_id",
			JoinTable:     "category_gender",
			OwnerColumn:   "gender_id",
			ForeignColumn: "category_id",
			ForeignTable:  "categories",
		}},
	}
}

// Service exposes gender management operations.
type Service interface {
	Create(ctx context.Context, input CreateGenderInput) (*GenderDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateGenderInput) (*GenderDTO, error)
	Get(ctx context.Context, id uuid.UUID, withTrashed bool) (*GenderDTO, error)
	List(ctx context.Context, params pagination.Params, withTrashed bool) ([]GenderDTO, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// GenderDTO is the gender payload returned to clients.
type GenderDTO struct {
	ID         uuid.UUID           `json:"id"`
	Name       string              `json:"name"`
	IsActive   bool                `json:"is_active"`
	Categories []GenderCategoryDTO `json:"categories"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
	DeletedAt  *time.Time          `json:"deleted_at,omitempty"`
}

// GenderCategoryDTO is the embedded category summary.
type GenderCategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CreateGenderInput holds the validated payload to create a gender.
type CreateGenderInput struct {
	Name        string
	IsActive    *bool
	CategoryIDs []uuid.UUID
}

// UpdateGenderInput holds optional mutation values for a gender.
type UpdateGenderInput struct {
	Name        *string
	IsActive    *bool
	CategoryIDs *[]uuid.UUID
}

type service struct {
	repo  *Repository
	saver *catalog.Saver
	cfg   catalog.Config
}

// NewService constructs a gender service instance.
func NewService(repo *Repository, saver *catalog.Saver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("gender repository required")
	}
	if saver == nil {
		return nil, fmt.Errorf("entity saver required")
	}
	return &service{repo: repo, saver: saver, cfg: SaverConfig()}, nil
}

func (s *service) Create(ctx context.Context, input CreateGenderInput) (*GenderDTO, error) {
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	attrs := map[string]any{
		"name":          input.Name,
		"is_active":     isActive,
		"categories_id": input.CategoryIDs,
	}

	id, err := s.saver.Create(ctx, s.cfg, attrs)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id, false)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateGenderInput) (*GenderDTO, error) {
	attrs := map[string]any{}
	if input.Name != nil {
		attrs["name"] = *input.Name
	}
	if input.IsActive != nil {
		attrs["is_active"] = *input.IsActive
	}
	if input.CategoryIDs != nil {
		attrs["categories_id"] = *input.CategoryIDs
	}

	if err := s.saver.Update(ctx, s.cfg, id, attrs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id, false)
}

func (s *service) Get(ctx context.Context, id uuid.UUID, withTrashed bool) (*GenderDTO, error) {
	gender, err := s.repo.FindByID(ctx, id, withTrashed)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*gender)
	return &dto, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, withTrashed bool) ([]GenderDTO, int64, error) {
	genders, total, err := s.repo.List(ctx, params, withTrashed)
	if err != nil {
		return nil, 0, err
	}
	out := make([]GenderDTO, 0, len(genders))
	for _, gender := range genders {
		out = append(out, toDTO(gender))
	}
	return out, total, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.saver.Destroy(ctx, s.cfg, id)
}

func toDTO(gender models.Gender) GenderDTO {
	dto := GenderDTO{
		ID:         gender.ID,
		Name:       gender.Name,
		IsActive:   gender.IsActive,
		Categories: make([]GenderCategoryDTO, 0, len(gender.Categories)),
		CreatedAt:  gender.CreatedAt,
		UpdatedAt:  gender.UpdatedAt,
	}
	for _, category := range gender.Categories {
		dto.Categories = append(dto.Categories, GenderCategoryDTO{ID: category.ID, Name: category.Name})
	}
	if gender.DeletedAt.Valid {
		t := gender.DeletedAt.Time
		dto.DeletedAt = &t
	}
	return dto
}
