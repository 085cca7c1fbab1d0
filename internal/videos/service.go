package video

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/victorrosario/videocatalog-backend/internal/catalog"
	"github.com/victorrosario/videocatalog-backend/internal/uploads"
	"github.com/victorrosario/videocatalog-backend/pkg/db/models"
	pkgerrors "github.com/victorrosario/videocatalog-backend/pkg/errors"
	"github.com/victorrosario/videocatalog-backend/pkg/pagination"
)

// SaverConfig declares how the saver persists videos: four file fields plus
// the category and gender relations.
func SaverConfig() catalog.Config {
	return catalog.Config{
		Table:      "videos",
		FileFields: models.VideoFileFields,
		Relations: []catalog.RelationSpec{
			{
				RequestKey:    "categories_id",
				JoinTable:     "category_video",
				OwnerColumn:   "video_id",
				ForeignColumn: "category_id",
				ForeignTable:  "categories",
			},
			{
				RequestKey:    "genders_id",
				JoinTable:     "gender_video",
				OwnerColumn:   "video_id",
				ForeignColumn: "gender_id",
				ForeignTable:  "genders",
			},
		},
	}
}

// Service exposes video management operations.
type Service interface {
	Create(ctx context.Context, input CreateVideoInput) (*VideoDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateVideoInput) (*VideoDTO, error)
	Get(ctx context.Context, id uuid.UUID, withTrashed bool) (*VideoDTO, error)
	List(ctx context.Context, params pagination.Params, withTrashed bool) ([]VideoDTO, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  *Repository
	saver *catalog.Saver
	cfg   catalog.Config
}

// NewService constructs a video service instance.
func NewService(repo *Repository, saver *catalog.Saver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("video repository required")
	}
	if saver == nil {
		return nil, fmt.Errorf("entity saver required")
	}
	return &service{repo: repo, saver: saver, cfg: SaverConfig()}, nil
}

func (s *service) Create(ctx context.Context, input CreateVideoInput) (*VideoDTO, error) {
	if !models.ValidRating(input.Rating) {
		return nil, invalidRatingError(input.Rating)
	}

	opened := false
	if input.Opened != nil {
		opened = *input.Opened
	}
	attrs := map[string]any{
		"title":         input.Title,
		"description":   input.Description,
		"year_launched": input.YearLaunched,
		"opened":        opened,
		"rating":        input.Rating,
		"duration":      input.Duration,
		"categories_id": input.CategoryIDs,
		"genders_id":    input.GenderIDs,
	}
	putFileAttrs(attrs, input.VideoFile, input.ThumbFile, input.BannerFile, input.TrailerFile)

	id, err := s.saver.Create(ctx, s.cfg, attrs)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id, false)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateVideoInput) (*VideoDTO, error) {
	if input.Rating != nil && !models.ValidRating(*input.Rating) {
		return nil, invalidRatingError(*input.Rating)
	}

	attrs := map[string]any{}
	if input.Title != nil {
		attrs["title"] = *input.Title
	}
	if input.Description != nil {
		attrs["description"] = *input.Description
	}
	if input.YearLaunched != nil {
		attrs["year_launched"] = *input.YearLaunched
	}
	if input.Opened != nil {
		attrs["opened"] = *input.Opened
	}
	if input.Rating != nil {
		attrs["rating"] = *input.Rating
	}
	if input.Duration != nil {
		attrs["duration"] = *input.Duration
	}
	if input.CategoryIDs != nil {
		attrs["categories_id"] = *input.CategoryIDs
	}
	if input.GenderIDs != nil {
		attrs["genders_id"] = *input.GenderIDs
	}
	putFileAttrs(attrs, input.VideoFile, input.ThumbFile, input.BannerFile, input.TrailerFile)

	if err := s.saver.Update(ctx, s.cfg, id, attrs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id, false)
}

func (s *service) Get(ctx context.Context, id uuid.UUID, withTrashed bool) (*VideoDTO, error) {
	video, err := s.repo.FindByID(ctx, id, withTrashed)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*video)
	return &dto, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, withTrashed bool) ([]VideoDTO, int64, error) {
	videos, total, err := s.repo.List(ctx, params, withTrashed)
	if err != nil {
		return nil, 0, err
	}
	out := make([]VideoDTO, 0, len(videos))
	for _, video := range videos {
		out = append(out, toDTO(video))
	}
	return out, total, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.saver.Destroy(ctx, s.cfg, id)
}

// putFileAttrs sets one attribute per non-nil payload. Upload order is not
// decided here; extraction follows the declared file-field list.
func putFileAttrs(attrs map[string]any, videoFile, thumbFile, bannerFile, trailerFile *uploads.Payload) {
	for field, payload := range map[string]*uploads.Payload{
		"video_file":   videoFile,
		"thumb_file":   thumbFile,
		"banner_file":  bannerFile,
		"trailer_file": trailerFile,
	} {
		if payload != nil {
			attrs[field] = payload
		}
	}
}

func invalidRatingError(rating string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid rating").
		WithDetails(map[string]any{
			"rating": fmt.Sprintf("%q is not one of %s", rating, strings.Join(models.RatingList, ", ")),
		})
}
