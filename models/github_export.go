package models

import (
	"time"

	"gorm.io/gorm"
)

// GitHubExport tracks where a deck was exported. Reserved: no endpoint reads
// or writes it yet.
type GitHubExport struct {
	ID             string  `gorm:"primaryKey"`
	UserID         string  `gorm:"not null;index"`
	DeckID         string  `gorm:"not null;index"`
	GitHubRepoURL  *string `gorm:"column:github_repo_url"`
	LastExportedAt *time.Time
	LastSyncedAt   *time.Time
	CreatedAt      time.Time
}

func (GitHubExport) TableName() string {
	return "github_exports"
}

func (e *GitHubExport) BeforeCreate(tx *gorm.DB) error {
	return assignID(&e.ID)
}
