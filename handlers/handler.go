package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/andrewpaige1/promptdec-api/metrics"
	"github.com/andrewpaige1/promptdec-api/models"
	"github.com/andrewpaige1/promptdec-api/repository"
)

// Store is everything the handlers need from the repository.
type Store interface {
	Ping(ctx context.Context) error

	EnsureUser(ctx context.Context, p repository.Profile) (models.User, bool, error)
	GetUser(ctx context.Context, userID string) (models.User, error)

	ListDecks(ctx context.Context, userID string) ([]models.Deck, error)
	GetDeck(ctx context.Context, userID, id string) (models.Deck, error)
	CreateDeck(ctx context.Context, userID string, deck models.Deck) (models.Deck, error)
	UpdateDeck(ctx context.Context, userID, id string, changes map[string]any) (models.Deck, error)
	DeleteDeck(ctx context.Context, userID, id string) error

	ListCards(ctx context.Context, userID string, filter repository.CardFilter) ([]models.Card, error)
	GetCard(ctx context.Context, userID, id string) (models.Card, error)
	CreateCard(ctx context.Context, userID string, card models.Card) (models.Card, error)
	UpdateCard(ctx context.Context, userID, id string, changes map[string]any) (models.Card, error)
	DeleteCard(ctx context.Context, userID, id string) error
	DuplicateCard(ctx context.Context, userID, id string) (models.Card, error)

	ListTemplates(ctx context.Context, userID string) ([]models.CardTemplate, error)
	GetTemplate(ctx context.Context, userID, id string) (models.CardTemplate, error)
	CreateTemplate(ctx context.Context, userID string, tpl models.CardTemplate) (models.CardTemplate, error)
	UpdateTemplate(ctx context.Context, userID, id string, changes map[string]any) (models.CardTemplate, error)
	DeleteTemplate(ctx context.Context, userID, id string) error
}

var _ Store = (*repository.Repository)(nil)

// DBHandler serves the REST API on top of a Store.
type DBHandler struct {
	Store   Store
	Log     *zap.Logger
	Metrics *metrics.Recorder
	Version string
}
