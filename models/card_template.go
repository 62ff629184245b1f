package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CardTemplate is a reusable front-side layout. Templates without an owner
// are system defaults visible to everyone.
type CardTemplate struct {
	ID              string  `gorm:"primaryKey"`
	UserID          *string `gorm:"index"`
	Name            string  `gorm:"not null;size:255"`
	Description     *string
	IsDefault       bool `gorm:"not null;default:false"`
	TemplateJSON    datatypes.JSON
	PreviewImageURL *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Cards keep existing when their template goes away.
	Cards []Card `gorm:"foreignKey:FrontTemplateID;constraint:OnDelete:SET NULL;"`
}

func (t *CardTemplate) BeforeCreate(tx *gorm.DB) error {
	return assignID(&t.ID)
}
