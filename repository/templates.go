package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/andrewpaige1/promptdec-api/models"
)

// VisibleTo limits a template query to the caller's own templates and the
// shared defaults.
func VisibleTo(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(user_id = ? OR (user_id IS NULL AND is_default = ?))", userID, true)
	}
}

func findVisibleTemplate(tx *gorm.DB, userID, id string) (models.CardTemplate, error) {
	var tpl models.CardTemplate
	err := tx.Scopes(VisibleTo(userID)).Where("id = ?", id).First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tpl, ErrNotFound
	}
	return tpl, err
}

func (r *Repository) ListTemplates(ctx context.Context, userID string) ([]models.CardTemplate, error) {
	var tpls []models.CardTemplate
	err := r.tx(ctx, func(tx *gorm.DB) error {
		return tx.Scopes(VisibleTo(userID)).Order("created_at, id").Find(&tpls).Error
	})
	return tpls, err
}

func (r *Repository) GetTemplate(ctx context.Context, userID, id string) (models.CardTemplate, error) {
	var tpl models.CardTemplate
	err := r.tx(ctx, func(tx *gorm.DB) (err error) {
		tpl, err = findVisibleTemplate(tx, userID, id)
		return err
	})
	return tpl, err
}

func (r *Repository) CreateTemplate(ctx context.Context, userID string, tpl models.CardTemplate) (models.CardTemplate, error) {
	tpl.ID = ""
	tpl.UserID = &userID
	err := r.tx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&tpl).Error
	})
	return tpl, err
}

// UpdateTemplate only touches the caller's own templates; shared defaults
// are read-only.
func (r *Repository) UpdateTemplate(ctx context.Context, userID, id string, changes map[string]any) (models.CardTemplate, error) {
	var tpl models.CardTemplate
	err := r.tx(ctx, func(tx *gorm.DB) (err error) {
		tpl, err = updateOwned[models.CardTemplate](tx, userID, id, changes)
		return err
	})
	return tpl, err
}

// DeleteTemplate removes one of the caller's templates. Cards using it keep
// existing with no template.
func (r *Repository) DeleteTemplate(ctx context.Context, userID, id string) error {
	return r.tx(ctx, func(tx *gorm.DB) error {
		return deleteOwned[models.CardTemplate](tx, userID, id)
	})
}

// DefaultTemplates are the shared templates every user can pick from.
var DefaultTemplates = []models.CardTemplate{
	{
		Name:         "Minimal",
		Description:  ptr("Plain title on a solid background"),
		IsDefault:    true,
		TemplateJSON: datatypes.JSON(`{"layout":"centered","background":{"type":"solid","color":"#ffffff"},"title":{"font":"Inter","size":28,"color":"#111111"}}`),
	},
	{
		Name:         "Gradient",
		Description:  ptr("Bold title over a diagonal gradient"),
		IsDefault:    true,
		TemplateJSON: datatypes.JSON(`{"layout":"centered","background":{"type":"linear-gradient","angle":135,"colors":["#6366f1","#ec4899"]},"title":{"font":"Inter","size":32,"color":"#ffffff","weight":700}}`),
	},
	{
		Name:         "Image",
		Description:  ptr("Title at the bottom of a full-bleed image"),
		IsDefault:    true,
		TemplateJSON: datatypes.JSON(`{"layout":"bottom","background":{"type":"image","fit":"cover","overlay":"rgba(0,0,0,0.35)"},"title":{"font":"Inter","size":24,"color":"#ffffff"}}`),
	},
}

// SeedDefaultTemplates inserts any shared template from DefaultTemplates
// that is not stored yet, matched by name. It returns how many were added.
func (r *Repository) SeedDefaultTemplates(ctx context.Context) (int, error) {
	added := 0
	err := r.tx(ctx, func(tx *gorm.DB) error {
		for _, def := range DefaultTemplates {
			var count int64
			err := tx.Model(&models.CardTemplate{}).
				Where("user_id IS NULL AND name = ?", def.Name).
				Count(&count).Error
			if err != nil {
				return fmt.Errorf("count template %q: %w", def.Name, err)
			}
			if count > 0 {
				continue
			}
			tpl := def
			tpl.ID = ""
			tpl.UserID = nil
			if err := tx.Create(&tpl).Error; err != nil {
				return fmt.Errorf("seed template %q: %w", def.Name, err)
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

func ptr[T any](v T) *T {
	return &v
}
