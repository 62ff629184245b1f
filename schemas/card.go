package schemas

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/andrewpaige1/promptdec-api/models"
)

// CardCreate is the body of POST /cards.
type CardCreate struct {
	DeckID             string          `json:"deck_id"`
	FrontTemplateID    *string         `json:"front_template_id"`
	FrontTitle         *string         `json:"front_title"`
	FrontCustomJSON    json.RawMessage `json:"front_custom_json"`
	FrontBackgroundURL *string         `json:"front_background_url"`
	FrontCustomColors  json.RawMessage `json:"front_custom_colors"`
	BackContent        *string         `json:"back_content"`
	BackFormat         *string         `json:"back_format"`
	Tags               json.RawMessage `json:"tags"`
	IsFavorite         bool            `json:"is_favorite"`
	ContentEmbedding   json.RawMessage `json:"content_embedding"`
}

// Build validates the request and returns the row to insert for userID.
// Whether DeckID and FrontTemplateID point at rows the caller may use is
// checked by the repository.
func (c CardCreate) Build(userID string) (models.Card, error) {
	var v validator

	if strings.TrimSpace(c.DeckID) == "" {
		v.add("deck_id", "is required")
	}
	checkTitle(&v, "front_title", c.FrontTitle)

	format := models.BackFormatMarkdown
	if c.BackFormat != nil {
		format = *c.BackFormat
	}
	checkBackFormat(&v, "back_format", format)

	card := models.Card{
		DeckID:             c.DeckID,
		UserID:             userID,
		FrontTemplateID:    emptyToNil(c.FrontTemplateID),
		FrontCustomJSON:    parseDocument(&v, "front_custom_json", c.FrontCustomJSON),
		FrontBackgroundURL: c.FrontBackgroundURL,
		FrontTitle:         c.FrontTitle,
		FrontCustomColors:  parseDocument(&v, "front_custom_colors", c.FrontCustomColors),
		BackContent:        c.BackContent,
		BackFormat:         format,
		Tags:               parseList[string](&v, "tags", c.Tags),
		IsFavorite:         c.IsFavorite,
		ContentEmbedding:   parseList[float64](&v, "content_embedding", c.ContentEmbedding),
	}

	if err := v.err(); err != nil {
		return models.Card{}, err
	}
	return card, nil
}

// CardUpdate is the body of PUT /cards/{id}. Omitted keys are left alone,
// explicit nulls clear nullable columns.
type CardUpdate struct {
	DeckID             Optional[string]          `json:"deck_id"`
	FrontTemplateID    Optional[string]          `json:"front_template_id"`
	FrontTitle         Optional[string]          `json:"front_title"`
	FrontCustomJSON    Optional[json.RawMessage] `json:"front_custom_json"`
	FrontBackgroundURL Optional[string]          `json:"front_background_url"`
	FrontCustomColors  Optional[json.RawMessage] `json:"front_custom_colors"`
	BackContent        Optional[string]          `json:"back_content"`
	BackFormat         Optional[string]          `json:"back_format"`
	Tags               Optional[json.RawMessage] `json:"tags"`
	IsFavorite         Optional[bool]            `json:"is_favorite"`
	ContentEmbedding   Optional[json.RawMessage] `json:"content_embedding"`
}

// Changes returns the columns to write, keyed by column name. A deck_id
// entry is a string, a front_template_id entry a *string.
func (u CardUpdate) Changes() (map[string]any, error) {
	var v validator
	changes := map[string]any{}

	if u.DeckID.Set {
		if u.DeckID.Null || strings.TrimSpace(u.DeckID.Value) == "" {
			v.add("deck_id", "must not be empty")
		} else {
			changes["deck_id"] = u.DeckID.Value
		}
	}
	if u.FrontTemplateID.Set {
		changes["front_template_id"] = emptyToNil(u.FrontTemplateID.Ptr())
	}
	if u.FrontTitle.Set {
		checkTitle(&v, "front_title", u.FrontTitle.Ptr())
		changes["front_title"] = u.FrontTitle.Ptr()
	}
	if u.FrontCustomJSON.Set {
		changes["front_custom_json"] = parseDocument(&v, "front_custom_json", u.FrontCustomJSON.Value)
	}
	if u.FrontBackgroundURL.Set {
		changes["front_background_url"] = u.FrontBackgroundURL.Ptr()
	}
	if u.FrontCustomColors.Set {
		changes["front_custom_colors"] = parseDocument(&v, "front_custom_colors", u.FrontCustomColors.Value)
	}
	if u.BackContent.Set {
		changes["back_content"] = u.BackContent.Ptr()
	}
	if u.BackFormat.Set {
		if u.BackFormat.Null {
			v.add("back_format", "must not be null")
		} else {
			checkBackFormat(&v, "back_format", u.BackFormat.Value)
			changes["back_format"] = u.BackFormat.Value
		}
	}
	if u.Tags.Set {
		changes["tags"] = parseList[string](&v, "tags", u.Tags.Value)
	}
	if u.IsFavorite.Set {
		if u.IsFavorite.Null {
			v.add("is_favorite", "must not be null")
		} else {
			changes["is_favorite"] = u.IsFavorite.Value
		}
	}
	if u.ContentEmbedding.Set {
		changes["content_embedding"] = parseList[float64](&v, "content_embedding", u.ContentEmbedding.Value)
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return changes, nil
}

type CardResponse struct {
	ID                 string         `json:"id"`
	DeckID             string         `json:"deck_id"`
	UserID             string         `json:"user_id"`
	FrontTemplateID    *string        `json:"front_template_id"`
	FrontTitle         *string        `json:"front_title"`
	FrontCustomJSON    datatypes.JSON `json:"front_custom_json"`
	FrontBackgroundURL *string        `json:"front_background_url"`
	FrontCustomColors  datatypes.JSON `json:"front_custom_colors"`
	BackContent        *string        `json:"back_content"`
	BackFormat         string         `json:"back_format"`
	Tags               []string       `json:"tags"`
	IsFavorite         bool           `json:"is_favorite"`
	ContentEmbedding   []float64      `json:"content_embedding"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func NewCardResponse(c models.Card) CardResponse {
	return CardResponse{
		ID:                 c.ID,
		DeckID:             c.DeckID,
		UserID:             c.UserID,
		FrontTemplateID:    c.FrontTemplateID,
		FrontTitle:         c.FrontTitle,
		FrontCustomJSON:    nullJSON(c.FrontCustomJSON),
		FrontBackgroundURL: c.FrontBackgroundURL,
		FrontCustomColors:  nullJSON(c.FrontCustomColors),
		BackContent:        c.BackContent,
		BackFormat:         c.BackFormat,
		Tags:               []string(c.Tags),
		IsFavorite:         c.IsFavorite,
		ContentEmbedding:   []float64(c.ContentEmbedding),
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func NewCardResponses(cards []models.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, NewCardResponse(c))
	}
	return out
}

// nullJSON makes an empty column encode as JSON null.
func nullJSON(j datatypes.JSON) datatypes.JSON {
	if len(j) == 0 {
		return datatypes.JSON("null")
	}
	return j
}
