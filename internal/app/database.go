package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"devtoolshub/internal/appearance"
)

// NewDB opens a MySQL connection using sensible defaults.
func NewDB(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, err
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return db, nil
}

// OpenPreferences returns the appearance store selected by cfg. With the auto
// backend a configured DSN selects MySQL and anything else keeps preferences in
// memory.
func OpenPreferences(ctx context.Context, cfg Config, logger *zap.Logger) (appearance.Store, error) {
	backend := cfg.PrefsBackend
	if backend == PrefsAuto {
		backend = PrefsMemory
		if cfg.DSN != "" {
			backend = PrefsMySQL
		}
	}

	switch backend {
	case PrefsMemory:
		logger.Info("appearance preferences kept in memory")
		return appearance.NewMemoryStore(), nil
	case PrefsBolt:
		logger.Info("appearance preferences in bolt file", zap.String("path", cfg.PrefsPath))
		return appearance.OpenBoltStore(cfg.PrefsPath)
	case PrefsMySQL:
		db, err := NewDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping db: %w", err)
		}
		store, err := appearance.NewMySQLStore(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("appearance preferences in mysql")
		return store, nil
	default:
		return nil, fmt.Errorf("unknown prefs backend %q", backend)
	}
}
