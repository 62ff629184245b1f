package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrewpaige1/promptdec-api/models"
)

// Profile carries the identity fields known for a caller. Nil fields are
// left untouched on an existing user.
type Profile struct {
	ID             string
	GitHubUsername *string
	DisplayName    *string
	AvatarURL      *string
}

// EnsureUser returns the user with p.ID, creating it first when it does not
// exist. Concurrent first requests for the same id all end up with the one
// row.
func (r *Repository) EnsureUser(ctx context.Context, p Profile) (models.User, bool, error) {
	var (
		user    models.User
		created bool
	)
	err := r.tx(ctx, func(tx *gorm.DB) error {
		candidate := models.User{
			ID:             p.ID,
			GitHubUsername: p.GitHubUsername,
			DisplayName:    p.DisplayName,
			AvatarURL:      p.AvatarURL,
		}
		// A concurrent first request inserts nothing here and reads the
		// winner's row below.
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&candidate)
		if res.Error != nil {
			return fmt.Errorf("insert user: %w", res.Error)
		}
		created = res.RowsAffected == 1

		if err := tx.Where("id = ?", p.ID).First(&user).Error; err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if created {
			return nil
		}

		changes := map[string]any{}
		syncField(changes, "github_username", user.GitHubUsername, p.GitHubUsername)
		syncField(changes, "display_name", user.DisplayName, p.DisplayName)
		syncField(changes, "avatar_url", user.AvatarURL, p.AvatarURL)
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&user).Updates(changes).Error; err != nil {
			return fmt.Errorf("sync user profile: %w", err)
		}
		return tx.Where("id = ?", p.ID).First(&user).Error
	})
	return user, created, err
}

func syncField(changes map[string]any, column string, current, incoming *string) {
	if incoming == nil {
		return
	}
	if current != nil && *current == *incoming {
		return
	}
	changes[column] = *incoming
}

func (r *Repository) GetUser(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := r.tx(ctx, func(tx *gorm.DB) error {
		err := tx.Where("id = ?", userID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	})
	return user, err
}
