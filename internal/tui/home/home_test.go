package home

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"devtoolshub/internal/appearance"
	"devtoolshub/internal/catalog"
	"devtoolshub/internal/tui/messages"
	"devtoolshub/internal/tui/styles"
)

func keyRunes(s string) tea.KeyMsg    { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
func keyType(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func newModel() Model {
	return New(styles.For(appearance.Light))
}

func typeQuery(m Model, q string) Model {
	r, _ := m.Update(keyRunes(q))
	return r.(Model)
}

func TestNew_ListsWholeCatalog(t *testing.T) {
	m := newModel()
	if got := len(m.Results()); got != catalog.Len() {
		t.Fatalf("expected %d results, got %d", catalog.Len(), got)
	}
	if m.Query() != "" {
		t.Errorf("expected empty query, got %q", m.Query())
	}
}

func TestTyping_FiltersByTitle(t *testing.T) {
	m := typeQuery(newModel(), "DOCKER")

	if m.Query() != "DOCKER" {
		t.Fatalf("expected query DOCKER, got %q", m.Query())
	}
	if len(m.Results()) != 1 || m.Results()[0].Tool != catalog.Docker {
		t.Fatalf("expected only Docker, got %+v", m.Results())
	}
}

func TestTyping_NoMatches(t *testing.T) {
	m := typeQuery(newModel(), "terraform")
	if len(m.Results()) != 0 {
		t.Fatalf("expected no results, got %d", len(m.Results()))
	}

	_, cmd := m.Update(keyType(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected enter to do nothing without results")
	}
}

func TestNavigation_BoundsChecking(t *testing.T) {
	m := newModel()

	r, _ := m.Update(keyType(tea.KeyUp))
	got := r.(Model)
	if got.cursor != 0 {
		t.Errorf("expected cursor=0, got %d", got.cursor)
	}

	for i := 0; i < catalog.Len()+3; i++ {
		r, _ = got.Update(keyType(tea.KeyDown))
		got = r.(Model)
	}
	if got.cursor != catalog.Len()-1 {
		t.Errorf("expected cursor=%d, got %d", catalog.Len()-1, got.cursor)
	}
}

func TestCursorIsClampedWhenResultsShrink(t *testing.T) {
	m := newModel()
	for i := 0; i < 5; i++ {
		r, _ := m.Update(keyType(tea.KeyDown))
		m = r.(Model)
	}

	m = typeQuery(m, "g")
	if m.cursor != len(m.Results())-1 {
		t.Errorf("expected cursor clamped to %d, got %d", len(m.Results())-1, m.cursor)
	}
}

func TestEnter_NavigatesToSelection(t *testing.T) {
	m := typeQuery(newModel(), "g")
	r, _ := m.Update(keyType(tea.KeyDown))
	m = r.(Model)

	_, cmd := m.Update(keyType(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected non-nil cmd on enter")
	}
	nav, ok := cmd().(messages.NavigateMsg)
	if !ok {
		t.Fatalf("expected NavigateMsg, got %T", cmd())
	}
	if nav.Path != "/groovy" {
		t.Errorf("expected /groovy, got %q", nav.Path)
	}
}

func TestEsc_ClearsThenQuits(t *testing.T) {
	m := typeQuery(newModel(), "vi")

	r, cmd := m.Update(keyType(tea.KeyEsc))
	m = r.(Model)
	if cmd != nil {
		t.Error("expected first esc to only clear the query")
	}
	if m.Query() != "" || len(m.Results()) != catalog.Len() {
		t.Fatalf("expected cleared query, got %q with %d results", m.Query(), len(m.Results()))
	}

	_, cmd = m.Update(keyType(tea.KeyEsc))
	if cmd == nil {
		t.Fatal("expected quit cmd on second esc")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg")
	}
}

func TestView_ShowsCountAndTitles(t *testing.T) {
	view := newModel().View()
	for _, want := range []string{"11 Tools Covered", "Kubernetes", "Apache NiFi"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
