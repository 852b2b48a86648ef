package page

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"devtoolshub/internal/appearance"
	"devtoolshub/internal/clipboard"
	"devtoolshub/internal/content"
	"devtoolshub/internal/router"
	"devtoolshub/internal/tui/messages"
	"devtoolshub/internal/tui/styles"
)

func keyRune(r rune) tea.KeyMsg        { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }
func keyType(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func library(t *testing.T) *content.Library {
	t.Helper()
	lib, err := content.Load()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	return lib
}

func newPage(t *testing.T, path string, write func(string) error) Model {
	t.Helper()
	copier := clipboard.NewWithWriter(write, nil)
	return New(router.Default().Resolve(path), library(t), copier, styles.For(appearance.Light))
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	r, cmd := m.Update(msg)
	return r.(Model), cmd
}

func TestTab_CyclesSnippets(t *testing.T) {
	m := newPage(t, "/vi", nil)
	if m.Selected() != 0 {
		t.Fatalf("expected no selection, got %d", m.Selected())
	}

	want := []int{1, 2, 1}
	for _, w := range want {
		m, _ = update(m, keyType(tea.KeyTab))
		if m.Selected() != w {
			t.Fatalf("expected snippet %d, got %d", w, m.Selected())
		}
	}

	m, _ = update(m, keyType(tea.KeyShiftTab))
	if m.Selected() != 2 {
		t.Errorf("expected shift+tab to wrap to 2, got %d", m.Selected())
	}

	m, _ = update(m, keyRune('1'))
	if m.Selected() != 1 {
		t.Errorf("expected digit to select 1, got %d", m.Selected())
	}
	m, _ = update(m, keyRune('9'))
	if m.Selected() != 1 {
		t.Errorf("expected out of range digit to be ignored, got %d", m.Selected())
	}
}

func TestCopy_ShowsIndicatorUntilExpired(t *testing.T) {
	var copied string
	m := newPage(t, "/vi", func(s string) error { copied = s; return nil })

	m, cmd := update(m, keyRune('c'))
	if cmd == nil {
		t.Fatal("expected copy cmd")
	}
	if m.Selected() != 1 {
		t.Errorf("expected copy without selection to pick snippet 1, got %d", m.Selected())
	}

	msg := cmd()
	res, ok := msg.(clipboard.CopiedMsg)
	if !ok || !res.OK || res.Index != 1 {
		t.Fatalf("expected successful CopiedMsg for 1, got %#v", msg)
	}
	if copied != "vi filename.txt" {
		t.Errorf("expected snippet text on clipboard, got %q", copied)
	}

	m, cmd = update(m, res)
	if m.Copied() != 1 {
		t.Errorf("expected indicator on 1, got %d", m.Copied())
	}
	if cmd == nil {
		t.Error("expected expiry tick")
	}
	if !strings.Contains(m.View(), "copied!") {
		t.Error("expected indicator in view")
	}

	m, _ = update(m, clipboard.IndicatorExpiredMsg{Index: 2})
	if m.Copied() != 1 {
		t.Errorf("expiry for another snippet must not clear, got %d", m.Copied())
	}
	m, _ = update(m, clipboard.IndicatorExpiredMsg{Index: 1})
	if m.Copied() != 0 {
		t.Errorf("expected indicator cleared, got %d", m.Copied())
	}
}

func TestCopy_FailureShowsNoIndicator(t *testing.T) {
	writers := map[string]func(string) error{
		"error": func(string) error { return errors.New("no clipboard") },
		"panic": func(string) error { panic("xclip missing") },
	}
	for name, write := range writers {
		t.Run(name, func(t *testing.T) {
			m := newPage(t, "/vi", write)
			m, cmd := update(m, keyRune('c'))
			if cmd == nil {
				t.Fatal("expected copy cmd")
			}

			res := cmd().(clipboard.CopiedMsg)
			if res.OK {
				t.Fatal("expected failed copy")
			}
			m, cmd = update(m, res)
			if m.Copied() != 0 || cmd != nil {
				t.Errorf("expected no indicator and no tick, got %d", m.Copied())
			}
			if strings.Contains(m.View(), "copied!") {
				t.Error("view must not claim success")
			}
		})
	}
}

func TestEsc_GoesBack(t *testing.T) {
	m := newPage(t, "/docker", nil)
	_, cmd := update(m, keyType(tea.KeyEsc))
	if cmd == nil {
		t.Fatal("expected back cmd")
	}
	if _, ok := cmd().(messages.BackMsg); !ok {
		t.Errorf("expected BackMsg")
	}
}

func TestBrackets_OpenNeighbourTools(t *testing.T) {
	tests := []struct {
		from string
		key  rune
		want string
	}{
		{"/groovy", ']', "/jmeter"},
		{"/jmeter", '[', "/groovy"},
		{"/docker", ']', "/git-github"},
	}
	for _, tt := range tests {
		m := newPage(t, tt.from, nil)
		_, cmd := update(m, keyRune(tt.key))
		if cmd == nil {
			t.Fatalf("%s %c: expected cmd", tt.from, tt.key)
		}
		nav := cmd().(messages.NavigateMsg)
		if nav.Path != tt.want {
			t.Errorf("%s %c: expected %s, got %s", tt.from, tt.key, tt.want, nav.Path)
		}
	}
}

func TestNotFound(t *testing.T) {
	m := newPage(t, "/does-not-exist", func(string) error { t.Fatal("nothing to copy"); return nil })

	view := m.View()
	if !strings.Contains(view, "404 - Page not found") || !strings.Contains(view, "/does-not-exist") {
		t.Errorf("unexpected view:\n%s", view)
	}
	if _, cmd := update(m, keyRune('c')); cmd != nil {
		t.Error("expected copy to do nothing on the not-found screen")
	}
	if _, cmd := update(m, keyRune(']')); cmd != nil {
		t.Error("expected no sibling navigation from the not-found screen")
	}
}

func TestScrolling(t *testing.T) {
	m := newPage(t, "/bash-commands", nil)
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 12})

	m, _ = update(m, keyType(tea.KeyDown))
	if m.Offset() != 1 {
		t.Fatalf("expected offset 1, got %d", m.Offset())
	}
	m, _ = update(m, keyType(tea.KeyUp))
	m, _ = update(m, keyType(tea.KeyUp))
	if m.Offset() != 0 {
		t.Fatalf("expected offset clamped at 0, got %d", m.Offset())
	}

	m, _ = update(m, keyRune('G'))
	last := m.Offset()
	if last == 0 {
		t.Fatal("expected end to scroll down")
	}
	m, _ = update(m, keyType(tea.KeyDown))
	if m.Offset() != last {
		t.Errorf("expected offset to stay at %d, got %d", last, m.Offset())
	}

	if got := strings.Count(m.View(), "\n"); got != 11 {
		t.Errorf("expected 10 body lines plus footer, got %d newlines", got)
	}
}

func TestSelectingScrollsSnippetIntoView(t *testing.T) {
	m := newPage(t, "/bash-commands", nil)
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 8})

	for i := 0; i < 9; i++ {
		m, _ = update(m, keyType(tea.KeyTab))
	}
	if m.Offset() == 0 {
		t.Error("expected selection far down the page to scroll")
	}
}
