package castmember

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/victorrosario/videocatalog-backend/pkg/db/models"
	pkgerrors "github.com/victorrosario/videocatalog-backend/pkg/errors"
	"github.com/victorrosario/videocatalog-backend/pkg/pagination"
)

// Service exposes cast member management operations.
type Service interface {
	Create(ctx context.Context, input CreateCastMemberInput) (*CastMemberDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCastMemberInput) (*CastMemberDTO, error)
	Get(ctx context.Context, id uuid.UUID, withTrashed bool) (*CastMemberDTO, error)
	List(ctx context.Context, params pagination.Params, withTrashed bool) ([]CastMemberDTO, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CastMemberDTO is the cast member payload returned to clients.
type CastMemberDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Type      int        `json:"type"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// CreateCastMemberInput holds the validated payload to create a cast member.
type CreateCastMemberInput struct {
	Name string
	Type int
}

// UpdateCastMemberInput holds optional mutation values for a cast member.
type UpdateCastMemberInput struct {
	Name *string
	Type *int
}

type service struct {
	repo *Repository
}

// NewService constructs a cast member service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cast member repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateCastMemberInput) (*CastMemberDTO, error) {
	if !models.ValidCastMemberType(input.Type) {
		return nil, invalidTypeError(input.Type)
	}
	member := models.CastMember{
		ID:   uuid.New(),
		Name: input.Name,
		Type: input.Type,
	}
	if err := s.repo.Create(ctx, &member); err != nil {
		return nil, err
	}
	dto := toDTO(member)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCastMemberInput) (*CastMemberDTO, error) {
	if input.Type != nil && !models.ValidCastMemberType(*input.Type) {
		return nil, invalidTypeError(*input.Type)
	}
	member, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		member.Name = *input.Name
	}
	if input.Type != nil {
		member.Type = *input.Type
	}
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}
	dto := toDTO(*member)
	return &dto, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, withTrashed bool) (*CastMemberDTO, error) {
	member, err := s.repo.FindByID(ctx, id, withTrashed)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*member)
	return &dto, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, withTrashed bool) ([]CastMemberDTO, int64, error) {
	members, total, err := s.repo.List(ctx, params, withTrashed)
	if err != nil {
		return nil, 0, err
	}
	out := make([]CastMemberDTO, 0, len(members))
	for _, member := range members {
		out = append(out, toDTO(member))
	}
	return out, total, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func invalidTypeError(t int) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid cast member type").
		WithDetails(map[string]any{"type": fmt.Sprintf("%d is not a known cast member type", t)})
}

func toDTO(member models.CastMember) CastMemberDTO {
	dto := CastMemberDTO{
		ID:        member.ID,
		Name:      member.Name,
		Type:      member.Type,
		CreatedAt: member.CreatedAt,
		UpdatedAt: member.UpdatedAt,
	}
	if member.DeletedAt.Valid {
		t := member.DeletedAt.Time
		dto.DeletedAt = &t
	}
	return dto
}
