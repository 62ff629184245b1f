package models

import "time"

// User represents an identity that owns decks, cards and templates.
// The ID is supplied by the identity provider, never generated here.
type User struct {
	ID             string  `gorm:"primaryKey"`
	GitHubID       *int64  `gorm:"column:github_id;uniqueIndex"`
	GitHubUsername *string `gorm:"column:github_username;size:255"`
	DisplayName    *string `gorm:"size:255"`
	AvatarURL      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Decks     []Deck         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Cards     []Card         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Templates []CardTemplate `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Exports   []GitHubExport `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}
