package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BackFormatMarkdown = "markdown"
	BackFormatText     = "text"

	// CopySuffix is appended to the title of a duplicated card.
	CopySuffix = " (Copy)"
)

// Card represents a single prompt: a visual front and a text back
type Card struct {
	ID     string `gorm:"primaryKey"`
	DeckID string `gorm:"not null;index"`
	UserID string `gorm:"not null;index"`

	// Front (visual)
	FrontTemplateID    *string `gorm:"index"`
	FrontCustomJSON    datatypes.JSON
	FrontBackgroundURL *string
	FrontTitle         *string `gorm:"size:255"`
	FrontCustomColors  datatypes.JSON

	// Back (content)
	BackContent *string
	BackFormat  string `gorm:"not null;default:markdown"`

	// Metadata
	Tags       datatypes.JSONSlice[string]
	IsFavorite bool `gorm:"not null;default:false"`

	// Stored for a future search feature, never queried.
	ContentEmbedding datatypes.JSONSlice[float64]

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.BackFormat == "" {
		c.BackFormat = BackFormatMarkdown
	}
	return assignID(&c.ID)
}

// Duplicate returns a copy of the card ready to be inserted. Every column is
// carried over except ID, CreatedAt and UpdatedAt; the title gets CopySuffix.
func (c Card) Duplicate() Card {
	title := "(Copy)"
	if c.FrontTitle != nil && *c.FrontTitle != "" {
		title = *c.FrontTitle + CopySuffix
	}

	return Card{
		DeckID:             c.DeckID,
		UserID:             c.UserID,
		FrontTemplateID:    cloneString(c.FrontTemplateID),
		FrontCustomJSON:    cloneJSON(c.FrontCustomJSON),
		FrontBackgroundURL: cloneString(c.FrontBackgroundURL),
		FrontTitle:         &title,
		FrontCustomColors:  cloneJSON(c.FrontCustomColors),
		BackContent:        cloneString(c.BackContent),
		BackFormat:         c.BackFormat,
		Tags:               cloneSlice(c.Tags),
		IsFavorite:         c.IsFavorite,
		ContentEmbedding:   cloneSlice(c.ContentEmbedding),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneJSON(j datatypes.JSON) datatypes.JSON {
	if j == nil {
		return nil
	}
	return append(datatypes.JSON(nil), j...)
}

func cloneSlice[T any](s datatypes.JSONSlice[T]) datatypes.JSONSlice[T] {
	if s == nil {
		return nil
	}
	return append(datatypes.JSONSlice[T](nil), s...)
}
