package models

import (
	"time"

	"gorm.io/gorm"
)

// Deck represents a named collection of cards
type Deck struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"not null;index"`
	Name        string `gorm:"not null;size:255"`
	Description *string
	ArtworkURL  *string
	IsPublic    bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Cards   []Card         `gorm:"foreignKey:DeckID;constraint:OnDelete:CASCADE;"`
	Exports []GitHubExport `gorm:"foreignKey:DeckID;constraint:OnDelete:CASCADE;"`
}

func (d *Deck) BeforeCreate(tx *gorm.DB) error {
	return assignID(&d.ID)
}
