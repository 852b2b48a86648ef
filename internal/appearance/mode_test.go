package appearance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestToggleIsInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := Mode(rapid.IntRange(int(Light), int(Dark)).Draw(t, "mode"))
		if m.Toggle() == m {
			t.Fatalf("Toggle(%s) kept the mode", m)
		}
		if m.Toggle().Toggle() != m {
			t.Fatalf("Toggle(Toggle(%s)) = %s", m, m.Toggle().Toggle())
		}
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"light", Light},
		{"dark", Dark},
		{" Dark ", Dark},
		{"LIGHT", Light},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, mustParse(t, got.String()))
	}

	_, err := Parse("sepia")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func mustParse(t *testing.T, s string) Mode {
	t.Helper()
	m, err := Parse(s)
	require.NoError(t, err)
	return m
}
