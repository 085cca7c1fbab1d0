package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cast member types mirror the catalog's numeric convention.
const (
	CastMemberTypeDirector = 1
	CastMemberTypeActor    = 2
)

// CastMember is a person attached to videos (director or actor).
type CastMember struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name      string         `gorm:"column:name;not null"`
	Type      int            `gorm:"column:type;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (CastMember) TableName() string { return "cast_members" }

// ValidCastMemberType reports whether t is a known cast member type.
func ValidCastMemberType(t int) bool {
	return t == CastMemberTypeDirector || t == CastMemberTypeActor
}
