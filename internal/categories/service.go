package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/victorrosario/videocatalog-backend/pkg/db/models"
	"github.com/victorrosario/videocatalog-backend/pkg/pagination"
)

// Service exposes category management operations.
type Service interface {
	Create(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error)
	Get(ctx context.Context, id uuid.UUID, withTrashed bool) (*CategoryDTO, error)
	List(ctx context.Context, params pagination.Params, withTrashed bool) ([]CategoryDTO, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService constructs a category service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	category := models.Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}
	dto := toDTO(category)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	dto := toDTO(*category)
	return &dto, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, withTrashed bool) (*CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id, withTrashed)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*category)
	return &dto, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, withTrashed bool) ([]CategoryDTO, int64, error) {
	categories, total, err := s.repo.List(ctx, params, withTrashed)
	if err != nil {
		return nil, 0, err
	}
	return toDTOs(categories), total, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
