package schemas

import (
	"time"

	"github.com/andrewpaige1/promptdec-api/models"
)

// DeckCreate is the body of POST /decks.
type DeckCreate struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ArtworkURL  *string `json:"artwork_url"`
	IsPublic    bool    `json:"is_public"`
}

// Build validates the request and returns the row to insert for userID.
func (d DeckCreate) Build(userID string) (models.Deck, error) {
	var v validator
	checkName(&v, "name", d.Name)
	if err := v.err(); err != nil {
		return models.Deck{}, err
	}

	return models.Deck{
		UserID:      userID,
		Name:        d.Name,
		Description: d.Description,
		ArtworkURL:  d.ArtworkURL,
		IsPublic:    d.IsPublic,
	}, nil
}

// DeckUpdate is the body of PUT /decks/{id}. Omitted keys are left alone.
type DeckUpdate struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
	ArtworkURL  Optional[string] `json:"artwork_url"`
	IsPublic    Optional[bool]   `json:"is_public"`
}

// Changes returns the columns to write, keyed by column name.
func (u DeckUpdate) Changes() (map[string]any, error) {
	var v validator
	changes := map[string]any{}

	if u.Name.Set {
		if u.Name.Null {
			v.add("name", "must not be null")
		} else {
			checkName(&v, "name", u.Name.Value)
			changes["name"] = u.Name.Value
		}
	}
	if u.Description.Set {
		changes["description"] = u.Description.Ptr()
	}
	if u.ArtworkURL.Set {
		changes["artwork_url"] = u.ArtworkURL.Ptr()
	}
	if u.IsPublic.Set {
		if u.IsPublic.Null {
			v.add("is_public", "must not be null")
		} else {
			changes["is_public"] = u.IsPublic.Value
		}
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return changes, nil
}

type DeckResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ArtworkURL  *string   `json:"artwork_url"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewDeckResponse(d models.Deck) DeckResponse {
	return DeckResponse{
		ID:          d.ID,
		UserID:      d.UserID,
		Name:        d.Name,
		Description: d.Description,
		ArtworkURL:  d.ArtworkURL,
		IsPublic:    d.IsPublic,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func NewDeckResponses(decks []models.Deck) []DeckResponse {
	out := make([]DeckResponse, 0, len(decks))
	for _, d := range decks {
		out = append(out, NewDeckResponse(d))
	}
	return out
}
