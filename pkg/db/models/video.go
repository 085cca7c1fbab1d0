package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RatingList enumerates the accepted age ratings.
var RatingList = []string{"L", "10", "12", "14", "16", "18"}

// VideoFileFields is the declared file-field order for the video entity.
// Extraction and upload follow this order.
var VideoFileFields = []string{"video_file", "thumb_file", "banner_file", "trailer_file"}

// Video is the catalog's main entity. File columns hold generated object
// names; the blobs live under a directory named by the video id.
type Video struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Title        string         `gorm:"column:title;not null"`
	Description  string         `gorm:"column:description;not null"`
	YearLaunched int            `gorm:"column:year_launched;not null"`
	Opened       bool           `gorm:"column:opened;not null;default:false"`
	Rating       string         `gorm:"column:rating;not null"`
	Duration     int            `gorm:"column:duration;not null"`
	VideoFile    *string        `gorm:"column:video_file"`
	ThumbFile    *string        `gorm:"column:thumb_file"`
	BannerFile   *string        `gorm:"column:banner_file"`
	TrailerFile  *string        `gorm:"column:trailer_file"`
	Categories   []Category     `gorm:"many2many:category_video"`
	Genders      []Gender       `gorm:"many2many:gender_video"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Video) TableName() string { return "videos" }

// ValidRating reports whether r is one of the accepted ratings.
func ValidRating(r string) bool {
	for _, candidate := range RatingList {
		if candidate == r {
			return true
		}
	}
	return false
}
