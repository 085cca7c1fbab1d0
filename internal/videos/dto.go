package video

import (
	"time"

	"github.com/google/uuid"

	"github.com/victorrosario/videocatalog-backend/internal/uploads"
	"github.com/victorrosario/videocatalog-backend/pkg/db/models"
)

// VideoDTO is the video payload returned to clients. File fields carry the
// generated object names stored in the row, not URLs.
type VideoDTO struct {
	ID           uuid.UUID         `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	YearLaunched int               `json:"year_launched"`
	Opened       bool              `json:"opened"`
	Rating       string            `json:"rating"`
	Duration     int               `json:"duration"`
	VideoFile    *string           `json:"video_file,omitempty"`
	ThumbFile    *string           `json:"thumb_file,omitempty"`
	BannerFile   *string           `json:"banner_file,omitempty"`
	TrailerFile  *string           `json:"trailer_file,omitempty"`
	Categories   []RelationItemDTO `json:"categories"`
	Genders      []RelationItemDTO `json:"genders"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	DeletedAt    *time.Time        `json:"deleted_at,omitempty"`
}

// RelationItemDTO is the embedded summary for an attached category or gender.
type RelationItemDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CreateVideoInput holds the validated payload to create a video.
type CreateVideoInput struct {
	Title        string
	Description  string
	YearLaunched int
	Opened       *bool
	Rating       string
	Duration     int
	CategoryIDs  []uuid.UUID
	GenderIDs    []uuid.UUID
	VideoFile    *uploads.Payload
	ThumbFile    *uploads.Payload
	BannerFile   *uploads.Payload
	TrailerFile  *uploads.Payload
}

// UpdateVideoInput holds optional mutation values for a video.
type UpdateVideoInput struct {
	Title        *string
	Description  *string
	YearLaunched *int
	Opened       *bool
	Rating       *string
	Duration     *int
	CategoryIDs  *[]uuid.UUID
	GenderIDs    *[]uuid.UUID
	VideoFile    *uploads.Payload
	ThumbFile    *uploads.Payload
	BannerFile   *uploads.Payload
	TrailerFile  *uploads.Payload
}

func toDTO(video models.Video) VideoDTO {
	dto := VideoDTO{
		ID:           video.ID,
		Title:        video.Title,
		Description:  video.Description,
		YearLaunched: video.YearLaunched,
		Opened:       video.Opened,
		Rating:       video.Rating,
		Duration:     video.Duration,
		VideoFile:    video.VideoFile,
		ThumbFile:    video.ThumbFile,
		BannerFile:   video.BannerFile,
		TrailerFile:  video.TrailerFile,
		Categories:   make([]RelationItemDTO, 0, len(video.Categories)),
		Genders:      make([]RelationItemDTO, 0, len(video.Genders)),
		CreatedAt:    video.CreatedAt,
		UpdatedAt:    video.UpdatedAt,
	}
	for _, category := range video.Categories {
		dto.Categories = append(dto.Categories, RelationItemDTO{ID: category.ID, Name: category.Name})
	}
	for _, gender := range video.Genders {
		dto.Genders = append(dto.Genders, RelationItemDTO{ID: gender.ID, Name: gender.Name})
	}
	if video.DeletedAt.Valid {
		t := video.DeletedAt.Time
		dto.DeletedAt = &t
	}
	return dto
}
