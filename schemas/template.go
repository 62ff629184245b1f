package schemas

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/andrewpaige1/promptdec-api/models"
)

// TemplateCreate is the body of POST /templates.
type TemplateCreate struct {
	Name            string          `json:"name"`
	Description     *string         `json:"description"`
	IsDefault       bool            `json:"is_default"`
	TemplateJSON    json.RawMessage `json:"template_json"`
	PreviewImageURL *string         `json:"preview_image_url"`
}

func (t TemplateCreate) Build(userID string) (models.CardTemplate, error) {
	var v validator
	checkName(&v, "name", t.Name)
	tpl := models.CardTemplate{
		UserID:          &userID,
		Name:            t.Name,
		Description:     t.Description,
		IsDefault:       t.IsDefault,
		TemplateJSON:    parseDocument(&v, "template_json", t.TemplateJSON),
		PreviewImageURL: t.PreviewImageURL,
	}
	if err := v.err(); err != nil {
		return models.CardTemplate{}, err
	}
	return tpl, nil
}

// TemplateUpdate is the body of PUT /templates/{id}.
type TemplateUpdate struct {
	Name            Optional[string]          `json:"name"`
	Description     Optional[string]          `json:"description"`
	IsDefault       Optional[bool]            `json:"is_default"`
	TemplateJSON    Optional[json.RawMessage] `json:"template_json"`
	PreviewImageURL Optional[string]          `json:"preview_image_url"`
}

func (u TemplateUpdate) Changes() (map[string]any, error) {
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
	if u.IsDefault.Set {
		if u.IsDefault.Null {
			v.add("is_default", "must not be null")
		} else {
			changes["is_default"] = u.IsDefault.Value
		}
	}
	if u.TemplateJSON.Set {
		changes["template_json"] = parseDocument(&v, "template_json", u.TemplateJSON.Value)
	}
	if u.PreviewImageURL.Set {
		changes["preview_image_url"] = u.PreviewImageURL.Ptr()
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return changes, nil
}

type TemplateResponse struct {
	ID              string         `json:"id"`
	UserID          *string        `json:"user_id"`
	Name            string         `json:"name"`
	Description     *string        `json:"description"`
	IsDefault       bool           `json:"is_default"`
	TemplateJSON    datatypes.JSON `json:"template_json"`
	PreviewImageURL *string        `json:"preview_image_url"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func NewTemplateResponse(t models.CardTemplate) TemplateResponse {
	return TemplateResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		Name:            t.Name,
		Description:     t.Description,
		IsDefault:       t.IsDefault,
		TemplateJSON:    nullJSON(t.TemplateJSON),
		PreviewImageURL: t.PreviewImageURL,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func NewTemplateResponses(tpls []models.CardTemplate) []TemplateResponse {
	out := make([]TemplateResponse, 0, len(tpls))
	for _, t := range tpls {
		out = append(out, NewTemplateResponse(t))
	}
	return out
}
