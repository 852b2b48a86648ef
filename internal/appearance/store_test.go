package appearance

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ MemoryStore }

func (*failingStore) Load(context.Context, string) (Mode, bool, error) {
	return Default, false, errors.New("backend down")
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	stored := NewMemoryStore()
	require.NoError(t, stored.Save(ctx, "visitor", Dark))

	tests := []struct {
		name    string
		store   Store
		key     string
		system  Preference
		want    Mode
		wantErr bool
	}{
		{name: "nothing known", store: NewMemoryStore(), key: "visitor", want: Light},
		{name: "system only", store: NewMemoryStore(), key: "visitor", system: System(Dark), want: Dark},
		{name: "stored wins over system", store: stored, key: "visitor", system: System(Light), want: Dark},
		{name: "no store", key: "visitor", system: System(Dark), want: Dark},
		{name: "no key", store: stored, system: System(Light), want: Light},
		{name: "store error falls back", store: &failingStore{}, key: "visitor", system: System(Dark), want: Dark, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(ctx, tt.store, tt.key, tt.system)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// exerciseStore runs the behaviour every Store must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "a", Dark))
	m, ok, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Dark, m)

	require.NoError(t, s.Save(ctx, "a", Dark.Toggle()))
	m, _, err = s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, Light, m)

	_, ok, err = s.Load(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseStore(t, s)

	require.NoError(t, s.Close())
	_, _, err := s.Load(context.Background(), "a")
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")
	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Save(context.Background(), "persisted", Dark))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	reopened, err := OpenBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	m, ok, err := reopened.Load(context.Background(), "persisted")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Dark, m)
}

func TestBoltStoreRequiresPath(t *testing.T) {
	_, err := OpenBoltStore("  ")
	assert.Error(t, err)
}

func TestBoltStoreClosed(t *testing.T) {
	s, err := OpenBoltStore(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Save(context.Background(), "a", Dark), ErrStoreClosed)
}
