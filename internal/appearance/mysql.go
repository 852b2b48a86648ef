package appearance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const createPreferencesTable = `CREATE TABLE IF NOT EXISTS appearance_preferences (
	visitor_id VARCHAR(64) NOT NULL PRIMARY KEY,
	mode VARCHAR(8) NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

// MySQLStore keeps one row per visitor in appearance_preferences.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore wraps db and makes sure the preferences table exists. The store
// owns db from here on and closes it in Close.
func NewMySQLStore(ctx context.Context, db *sql.DB) (*MySQLStore, error) {
	if _, err := db.ExecContext(ctx, createPreferencesTable); err != nil {
		return nil, fmt.Errorf("create preferences table: %w", err)
	}
	return &MySQLStore{db: db}, nil
}

func (s *MySQLStore) Load(ctx context.Context, key string) (Mode, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT mode FROM appearance_preferences WHERE visitor_id = ?", key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Default, false, nil
	}
	if err != nil {
		return Default, false, fmt.Errorf("load preference: %w", err)
	}

	m, err := Parse(raw)
	if err != nil {
		return Default, false, err
	}
	return m, true, nil
}

func (s *MySQLStore) Save(ctx context.Context, key string, mode Mode) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO appearance_preferences (visitor_id, mode) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE mode = VALUES(mode)`,
		key, mode.String(),
	)
	if err != nil {
		return fmt.Errorf("save preference: %w", err)
	}
	return nil
}

func (s *MySQLStore) Close() error {
	return s.db.Close()
}
