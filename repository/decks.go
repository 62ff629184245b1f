package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/andrewpaige1/promptdec-api/models"
)

func (r *Repository) ListDecks(ctx context.Context, userID string) ([]models.Deck, error) {
	var decks []models.Deck
	err := r.tx(ctx, func(tx *gorm.DB) error {
		return tx.Scopes(OwnedBy(userID)).Order("created_at, id").Find(&decks).Error
	})
	return decks, err
}

func (r *Repository) GetDeck(ctx context.Context, userID, id string) (models.Deck, error) {
	var deck models.Deck
	err := r.tx(ctx, func(tx *gorm.DB) (err error) {
		deck, err = findOwned[models.Deck](tx, userID, id)
		return err
	})
	return deck, err
}

// CreateDeck inserts deck for userID. Any id or owner set on deck is
// replaced.
func (r *Repository) CreateDeck(ctx context.Context, userID string, deck models.Deck) (models.Deck, error) {
	deck.ID = ""
	deck.UserID = userID
	err := r.tx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&deck).Error
	})
	return deck, err
}

func (r *Repository) UpdateDeck(ctx context.Context, userID, id string, changes map[string]any) (models.Deck, error) {
	var deck models.Deck
	err := r.tx(ctx, func(tx *gorm.DB) (err error) {
		deck, err = updateOwned[models.Deck](tx, userID, id, changes)
		return err
	})
	return deck, err
}

// DeleteDeck removes the deck. Its cards and exports go with it.
func (r *Repository) DeleteDeck(ctx context.Context, userID, id string) error {
	return r.tx(ctx, func(tx *gorm.DB) error {
		return deleteOwned[models.Deck](tx, userID, id)
	})
}
