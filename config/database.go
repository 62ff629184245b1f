package config

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andrewpaige1/promptdec-api/logger"
	"github.com/andrewpaige1/promptdec-api/models"
)

// Connect opens the store named by cfg.DatabaseURL. postgres:// and
// postgresql:// URLs use Postgres; sqlite:// and file: URLs use SQLite with
// foreign keys enforced. Store warnings and errors go to log.
func Connect(cfg Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, isSQLite, err := Dialector(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.NewGorm(log, slowQuery),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if isSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql db: %w", err)
		}
		// SQLite allows one writer; in-memory databases also live and die
		// with their connection.
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

const slowQuery = 200 * time.Millisecond

// Dialector picks the gorm driver for url. The bool reports SQLite.
func Dialector(url string) (gorm.Dialector, bool, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), false, nil
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(SQLiteDSN(strings.TrimPrefix(url, "sqlite://"))), true, nil
	case strings.HasPrefix(url, "file:"):
		return sqlite.Open(SQLiteDSN(url)), true, nil
	default:
		return nil, false, fmt.Errorf("unsupported database url %q", url)
	}
}

// SQLiteDSN turns on foreign key enforcement unless dsn already sets it.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
