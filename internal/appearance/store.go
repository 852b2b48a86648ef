package appearance

import (
	"context"
	"errors"
	"sync"
)

// ErrStoreClosed is returned by stores used after Close.
var ErrStoreClosed = errors.New("appearance store is closed")

// Store keeps one mode per key. Load reports false when nothing is stored.
type Store interface {
	Load(ctx context.Context, key string) (Mode, bool, error)
	Save(ctx context.Context, key string, mode Mode) error
	Close() error
}

// Preference is what the environment reports about colour scheme, if anything.
type Preference struct {
	Mode  Mode
	Known bool
}

// System wraps a known system preference.
func System(m Mode) Preference {
	return Preference{Mode: m, Known: true}
}

// Resolve picks the stored mode for key, then the system preference, then
// Default. A store error is returned together with the fallback mode so callers
// can log it and carry on.
func Resolve(ctx context.Context, store Store, key string, system Preference) (Mode, error) {
	fallback := Default
	if system.Known {
		fallback = system.Mode
	}
	if store == nil || key == "" {
		return fallback, nil
	}

	m, ok, err := store.Load(ctx, key)
	if err != nil {
		return fallback, err
	}
	if !ok {
		return fallback, nil
	}
	return m, nil
}

// MemoryStore keeps preferences for the life of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	modes  map[string]Mode
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{modes: make(map[string]Mode)}
}

func (s *MemoryStore) Load(_ context.Context, key string) (Mode, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Default, false, ErrStoreClosed
	}
	m, ok := s.modes[key]
	return m, ok, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.modes[key] = mode
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
