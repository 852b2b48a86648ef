package appearance

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const preferencesBucket = "appearance"

// BoltStore keeps preferences in a local bbolt file.
type BoltStore struct {
	mu     sync.RWMutex
	db     *bolt.DB
	closed bool
}

// OpenBoltStore opens or creates the preferences file at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("preferences path is required")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("ensure preferences dir: %w", err)
	}
	db, err := bolt.Open(trimmed, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open preferences db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(preferencesBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create preferences bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Load(_ context.Context, key string) (Mode, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Default, false, ErrStoreClosed
	}

	var (
		mode  = Default
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket([]byte(preferencesBucket)).Get([]byte(key))
		if value == nil {
			return nil
		}
		m, err := Parse(string(value))
		if err != nil {
			return err
		}
		mode, found = m, true
		return nil
	})
	if err != nil {
		return Default, false, fmt.Errorf("load preference %q: %w", key, err)
	}
	return mode, found, nil
}

func (s *BoltStore) Save(_ context.Context, key string, mode Mode) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(preferencesBucket)).Put([]byte(key), []byte(mode.String())); err != nil {
			return fmt.Errorf("save preference %q: %w", key, err)
		}
		return nil
	})
}

func (s *BoltStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
