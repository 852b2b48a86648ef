// Package appearance holds the light/dark preference and the stores that keep it
// between visits.
package appearance

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by Parse for anything but "light" or "dark".
var ErrUnknownMode = errors.New("unknown appearance mode")

// Mode is the colour scheme of the shell.
type Mode int

const (
	Light Mode = iota
	Dark
)

// Default is used when neither a stored nor a system preference is known.
const Default = Light

// Toggle returns the other mode. Toggle(Toggle(m)) == m.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// Parse reads a mode name case-insensitively.
func Parse(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Light, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}
