package router

import (
	"errors"
	"fmt"
	"strings"

	"devtoolshub/internal/catalog"
)

// HomePath is the path of the catalog view.
const HomePath = "/"

// Kind classifies what a path resolves to.
type Kind int

const (
	KindNotFound Kind = iota
	KindHome
	KindTool
)

func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindTool:
		return "tool"
	default:
		return "not_found"
	}
}

var (
	// ErrDuplicateRoute is returned when two routes claim the same path.
	ErrDuplicateRoute = errors.New("duplicate route")
	// ErrInvalidPath is returned for empty or relative route paths.
	ErrInvalidPath = errors.New("invalid route path")
)

// Unit is the result of resolving a path. Tool is meaningful only for KindTool.
type Unit struct {
	Kind Kind
	Path string
	Tool catalog.Tool
}

// Found reports whether the unit is backed by a registered route.
func (u Unit) Found() bool {
	return u.Kind != KindNotFound
}

// Entry returns the catalog entry of a tool unit.
func (u Unit) Entry() (catalog.Entry, bool) {
	if u.Kind != KindTool {
		return catalog.Entry{}, false
	}
	return u.Tool.Entry(), true
}

// Table is the closed, immutable mapping from path to unit.
type Table struct {
	routes map[string]Unit
	order  []string
}

// NewTable builds a table holding the home route plus one route per entry.
func NewTable(entries []catalog.Entry) (*Table, error) {
	t := &Table{routes: make(map[string]Unit, len(entries)+1)}
	if err := t.add(Unit{Kind: KindHome, Path: HomePath}); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := t.add(Unit{Kind: KindTool, Path: e.Path, Tool: e.Tool}); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) add(u Unit) error {
	if !strings.HasPrefix(u.Path, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, u.Path)
	}
	if _, ok := t.routes[u.Path]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRoute, u.Path)
	}
	t.routes[u.Path] = u
	t.order = append(t.order, u.Path)
	return nil
}

var defaultTable *Table

func init() {
	table, err := NewTable(catalog.All())
	if err != nil {
		panic(fmt.Sprintf("router: %v", err))
	}
	defaultTable = table
}

// Default returns the table built from the catalog.
func Default() *Table {
	return defaultTable
}

// Resolve matches path exactly against the table. Unknown paths yield a
// KindNotFound unit carrying the requested path.
func (t *Table) Resolve(path string) Unit {
	if u, ok := t.routes[path]; ok {
		return u
	}
	return Unit{Kind: KindNotFound, Path: path}
}

// Has reports whether path is registered.
func (t *Table) Has(path string) bool {
	_, ok := t.routes[path]
	return ok
}

// Paths lists registered paths in registration order.
func (t *Table) Paths() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len reports the number of routes.
func (t *Table) Len() int {
	return len(t.order)
}
