package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/andrewpaige1/promptdec-api/models"
)

// CardFilter narrows ListCards. Nil fields do not filter.
type CardFilter struct {
	DeckID     *string
	IsFavorite *bool
	Tag        *string
}

func (f CardFilter) scope(db *gorm.DB) *gorm.DB {
	if f.DeckID != nil {
		db = db.Where("deck_id = ?", *f.DeckID)
	}
	if f.IsFavorite != nil {
		db = db.Where("is_favorite = ?", *f.IsFavorite)
	}
	if f.Tag != nil {
		db = db.Where(datatypes.JSONArrayQuery("tags").Contains(*f.Tag))
	}
	return db
}

func (r *Repository) ListCards(ctx context.Context, userID string, filter CardFilter) ([]models.Card, error) {
	var cards []models.Card
	err := r.tx(ctx, func(tx *gorm.DB) error {
		return tx.Scopes(OwnedBy(userID), filter.scope).Order("created_at, id").Find(&cards).Error
	})
	return cards, err
}

func (r *Repository) GetCard(ctx context.Context, userID, id string) (models.Card, error) {
	var card models.Card
	err := r.tx(ctx, func(tx *gorm.DB) (err error) {
		card, err = findOwned[models.Card](tx, userID, id)
		return err
	})
	return card, err
}

// CreateCard inserts card for userID after checking that its deck belongs
// to the caller and its template, if any, is visible to the caller.
func (r *Repository) CreateCard(ctx context.Context, userID string, card models.Card) (models.Card, error) {
	card.ID = ""
	card.UserID = userID
	err := r.tx(ctx, func(tx *gorm.DB) error {
		if err := checkDeckRef(tx, userID, card.DeckID); err != nil {
			return err
		}
		if card.FrontTemplateID != nil {
			if err := checkTemplateRef(tx, userID, *card.FrontTemplateID); err != nil {
				return err
			}
		}
		return tx.Create(&card).Error
	})
	return card, err
}

// UpdateCard applies changes to the card. A new deck_id or
// front_template_id is checked the same way CreateCard checks it, once the
// card itself is known to belong to userID.
func (r *Repository) UpdateCard(ctx context.Context, userID, id string, changes map[string]any) (models.Card, error) {
	var card models.Card
	err := r.tx(ctx, func(tx *gorm.DB) (err error) {
		if _, err := findOwned[models.Card](tx, userID, id); err != nil {
			return err
		}
		if deckID, ok := changes["deck_id"].(string); ok {
			if err := checkDeckRef(tx, userID, deckID); err != nil {
				return err
			}
		}
		if tplID, ok := changes["front_template_id"].(*string); ok && tplID != nil {
			if err := checkTemplateRef(tx, userID, *tplID); err != nil {
				return err
			}
		}
		card, err = updateOwned[models.Card](tx, userID, id, changes)
		return err
	})
	return card, err
}

func (r *Repository) DeleteCard(ctx context.Context, userID, id string) error {
	return r.tx(ctx, func(tx *gorm.DB) error {
		return deleteOwned[models.Card](tx, userID, id)
	})
}

// DuplicateCard stores a copy of the card in the same deck with " (Copy)"
// appended to its title.
func (r *Repository) DuplicateCard(ctx context.Context, userID, id string) (models.Card, error) {
	var dup models.Card
	err := r.tx(ctx, func(tx *gorm.DB) error {
		src, err := findOwned[models.Card](tx, userID, id)
		if err != nil {
			return err
		}
		dup = src.Duplicate()
		return tx.Create(&dup).Error
	})
	return dup, err
}

func checkDeckRef(tx *gorm.DB, userID, deckID string) error {
	_, err := findOwned[models.Deck](tx, userID, deckID)
	if errors.Is(err, ErrNotFound) {
		return &ReferenceError{Field: "deck_id", ID: deckID}
	}
	return err
}

func checkTemplateRef(tx *gorm.DB, userID, templateID string) error {
	_, err := findVisibleTemplate(tx, userID, templateID)
	if errors.Is(err, ErrNotFound) {
		return &ReferenceError{Field: "front_template_id", ID: templateID}
	}
	return err
}
