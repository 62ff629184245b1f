package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository is the only component that touches the store. Every exported
// method runs as a single transaction and takes the caller's user id
// explicitly.
type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Ping checks that the store is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) tx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// OwnedBy limits a query to rows whose user_id is userID.
func OwnedBy(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// findOwned loads the row of type T with the given id when it belongs to
// userID. A missing row and a foreign row both map to ErrNotFound.
func findOwned[T any](tx *gorm.DB, userID, id string) (T, error) {
	var row T
	err := tx.Scopes(OwnedBy(userID)).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, ErrNotFound
	}
	return row, err
}

// deleteOwned removes the row of type T with the given id when it belongs
// to userID.
func deleteOwned[T any](tx *gorm.DB, userID, id string) error {
	var row T
	res := tx.Scopes(OwnedBy(userID)).Where("id = ?", id).Delete(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// updateOwned writes changes to the row of type T with the given id when it
// belongs to userID, then reads the row back.
func updateOwned[T any](tx *gorm.DB, userID, id string, changes map[string]any) (T, error) {
	row, err := findOwned[T](tx, userID, id)
	if err != nil {
		return row, err
	}

	cols := make(map[string]any, len(changes)+1)
	for k, v := range changes {
		cols[k] = v
	}
	cols["updated_at"] = tx.NowFunc()

	if err := tx.Model(&row).Updates(cols).Error; err != nil {
		return row, err
	}

	var fresh T
	if err := tx.Where("id = ?", id).First(&fresh).Error; err != nil {
		return fresh, err
	}
	return fresh, nil
}
