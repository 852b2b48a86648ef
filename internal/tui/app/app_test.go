package app

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"devtoolshub/internal/appearance"
	"devtoolshub/internal/content"
	"devtoolshub/internal/router"
	"devtoolshub/internal/tui/home"
	"devtoolshub/internal/tui/messages"
	"devtoolshub/internal/tui/page"
)

func newModel(t *testing.T, start string, prefs appearance.Store) Model {
	t.Helper()
	lib, err := content.Load()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	return New(Options{Library: lib, Prefs: prefs, Start: start})
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	r, cmd := m.Update(msg)
	return r.(Model), cmd
}

// drain runs cmd and any batched cmds, returning the messages they produce.
// Ticks and blinks are not run.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, drain(c)...)
	}
	return out
}

func TestNew_StartsWithHomeScreen(t *testing.T) {
	m := newModel(t, "", nil)
	if _, ok := m.current.(home.Model); !ok {
		t.Errorf("expected home.Model as initial screen, got %T", m.current)
	}
	if m.Current().Kind != router.KindHome {
		t.Errorf("expected home route, got %s", m.Current().Kind)
	}
}

func TestNew_StartPath(t *testing.T) {
	m := newModel(t, "/kubernetes", nil)
	p, ok := m.current.(page.Model)
	if !ok {
		t.Fatalf("expected page.Model, got %T", m.current)
	}
	if p.Unit().Path != "/kubernetes" {
		t.Errorf("expected /kubernetes, got %s", p.Unit().Path)
	}
}

func TestNavigate_SwitchesToTutorial(t *testing.T) {
	m := newModel(t, "", nil)
	m, cmd := update(m, messages.NavigateMsg{Path: "/docker"})

	if m.Current().Kind != router.KindTool || m.Current().Path != "/docker" {
		t.Fatalf("expected /docker tool route, got %+v", m.Current())
	}
	if _, ok := m.current.(page.Model); !ok {
		t.Errorf("expected page.Model, got %T", m.current)
	}
	if cmd == nil {
		t.Error("expected init and resize cmds")
	}
	if !strings.Contains(m.View(), "Docker Tutorial") {
		t.Error("expected tutorial in view")
	}
}

func TestNavigate_UnknownPathShowsNotFound(t *testing.T) {
	m := newModel(t, "/docker", nil)
	m, _ = update(m, messages.NavigateMsg{Path: "/does-not-exist"})

	if m.Current().Kind != router.KindNotFound {
		t.Fatalf("expected not found, got %s", m.Current().Kind)
	}
	view := m.View()
	if !strings.Contains(view, "404 - Page not found") {
		t.Error("expected not-found notice")
	}
	if strings.Contains(view, "Docker Tutorial") {
		t.Error("previous content must be gone")
	}
	if !strings.Contains(view, "Kubernetes") {
		t.Error("expected the nav header to stay")
	}
}

func TestBackMsg_ReturnsToHomeWithFreshQuery(t *testing.T) {
	m := newModel(t, "", nil)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("dock")})
	if q := m.current.(home.Model).Query(); q != "dock" {
		t.Fatalf("expected query to be typed, got %q", q)
	}

	m, _ = update(m, messages.NavigateMsg{Path: "/docker"})
	m, _ = update(m, messages.BackMsg{})

	h, ok := m.current.(home.Model)
	if !ok {
		t.Fatalf("expected home.Model after BackMsg, got %T", m.current)
	}
	if h.Query() != "" {
		t.Errorf("expected query reset, got %q", h.Query())
	}
}

func TestCtrlC_Quits(t *testing.T) {
	m := newModel(t, "/vi", nil)
	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected non-nil cmd for quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestCtrlT_TogglesAndPersists(t *testing.T) {
	prefs := appearance.NewMemoryStore()
	m := newModel(t, "/vi", prefs)

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.Mode() != appearance.Dark {
		t.Fatalf("expected dark, got %s", m.Mode())
	}

	var saved bool
	for _, msg := range drain(cmd) {
		if s, ok := msg.(prefsSavedMsg); ok {
			saved = true
			if s.err != nil {
				t.Fatalf("save failed: %v", s.err)
			}
		}
	}
	if !saved {
		t.Fatal("expected a save cmd")
	}
	got, ok, err := prefs.Load(context.Background(), PrefsKey)
	if err != nil || !ok || got != appearance.Dark {
		t.Fatalf("expected stored dark, got %s %v %v", got, ok, err)
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.Mode() != appearance.Light {
		t.Errorf("expected toggling twice to restore light, got %s", m.Mode())
	}
	if m.Current().Path != "/vi" {
		t.Errorf("toggle must not navigate, got %s", m.Current().Path)
	}
}

func TestToggleWithoutStore(t *testing.T) {
	m := newModel(t, "", nil)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.Mode() != appearance.Dark {
		t.Errorf("expected dark, got %s", m.Mode())
	}
}

func TestWindowSize_ReservesHeader(t *testing.T) {
	m := newModel(t, "/bash-commands", nil)
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 20})

	body := m.current.View()
	if got := strings.Count(body, "\n"); got != 20-headerHeight-1 {
		t.Errorf("expected page to fit below the header, got %d newlines", got)
	}
}
