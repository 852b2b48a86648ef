// Package page is the terminal screen for one route: a scrollable tutorial with
// copyable snippets, or the not-found notice.
package page

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"devtoolshub/internal/catalog"
	"devtoolshub/internal/clipboard"
	"devtoolshub/internal/content"
	"devtoolshub/internal/router"
	"devtoolshub/internal/tui/messages"
	"devtoolshub/internal/tui/styles"
)

const footerHeight = 2

// Model shows the content unit a route resolved to.
type Model struct {
	unit   router.Unit
	bundle *content.Bundle
	copier *clipboard.Copier
	styles styles.Styles

	text     content.Text
	snippets int
	selected int
	copied   int
	offset   int
	width    int
	height   int
}

// New builds the screen for u. Units without a bundle show the not-found notice.
func New(u router.Unit, lib *content.Library, copier *clipboard.Copier, st styles.Styles) Model {
	m := Model{unit: u, copier: copier, styles: st}
	if b, ok := lib.ForUnit(u); ok {
		m.bundle = b
		m.snippets = len(b.Snippets())
	}
	m.render()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Unit is the route this screen shows.
func (m Model) Unit() router.Unit { return m.unit }

// Selected is the selected snippet index, 0 when none.
func (m Model) Selected() int { return m.selected }

// Copied is the snippet whose "copied" indicator is showing, 0 when none.
func (m Model) Copied() int { return m.copied }

// Offset is the first visible line.
func (m Model) Offset() int { return m.offset }

func (m *Model) render() {
	if m.bundle == nil {
		return
	}
	r := content.TextRenderer{
		Styles:    m.styles.Text(),
		CodeStyle: m.styles.CodeStyle(),
		Width:     m.width,
	}
	m.text = r.Render(m.bundle, m.selected, m.copied)
	m.clampOffset()
}

func (m Model) bodyHeight() int {
	if m.height <= footerHeight {
		return 0
	}
	return m.height - footerHeight
}

func (m *Model) clampOffset() {
	limit := len(m.text.Lines) - m.bodyHeight()
	if m.bodyHeight() == 0 || limit < 0 {
		limit = 0
	}
	m.offset = min(max(m.offset, 0), limit)
}

func (m *Model) scroll(delta int) {
	m.offset += delta
	m.clampOffset()
}

func (m *Model) selectSnippet(n int) {
	if m.snippets == 0 {
		return
	}
	m.selected = n
	m.render()
	if line, ok := m.text.Snippets[n]; ok {
		h := m.bodyHeight()
		if h > 0 && (line < m.offset || line >= m.offset+h) {
			m.offset = line
			m.clampOffset()
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.render()
		return m, nil

	case messages.AppearanceChangedMsg:
		m.styles = styles.For(msg.Mode)
		m.render()
		return m, nil

	case clipboard.CopiedMsg:
		if !msg.OK {
			return m, nil
		}
		m.copied = msg.Index
		m.render()
		return m, clipboard.ExpireIndicator(msg.Index)

	case clipboard.IndicatorExpiredMsg:
		if m.copied == msg.Index {
			m.copied = 0
			m.render()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "esc", "backspace", "q", "h":
		return m, func() tea.Msg { return messages.BackMsg{} }
	case "up", "k":
		m.scroll(-1)
	case "down", "j":
		m.scroll(1)
	case "pgup":
		m.scroll(-max(m.bodyHeight(), 1))
	case "pgdown", " ":
		m.scroll(max(m.bodyHeight(), 1))
	case "home", "g":
		m.offset = 0
	case "end", "G":
		m.offset = len(m.text.Lines)
		m.clampOffset()
	case "tab", "n":
		if m.snippets > 0 {
			m.selectSnippet(m.selected%m.snippets + 1)
		}
	case "shift+tab", "p":
		if m.snippets > 0 {
			prev := m.selected - 1
			if prev < 1 {
				prev = m.snippets
			}
			m.selectSnippet(prev)
		}
	case "c", "y", "enter":
		return m.copySelected()
	case "[", "]":
		return m, m.sibling(key == "]")
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if n := int(key[0] - '0'); n <= m.snippets {
				m.selectSnippet(n)
			}
		}
	}
	return m, nil
}

func (m Model) copySelected() (tea.Model, tea.Cmd) {
	if m.bundle == nil || m.snippets == 0 || m.copier == nil {
		return m, nil
	}
	if m.selected == 0 {
		m.selectSnippet(1)
	}
	s, err := m.bundle.Snippet(m.selected)
	if err != nil {
		return m, nil
	}
	return m, m.copier.CopyCmd(s.Index, s.Code)
}

// sibling opens the next or previous tool in catalog order.
func (m Model) sibling(next bool) tea.Cmd {
	if m.unit.Kind != router.KindTool {
		return nil
	}
	n := catalog.Len()
	step := n - 1
	if next {
		step = 1
	}
	target := catalog.Tool((int(m.unit.Tool) + step) % n)
	path := target.Entry().Path
	return func() tea.Msg { return messages.NavigateMsg{Path: path} }
}

func (m Model) View() string {
	st := m.styles
	if m.bundle == nil {
		body := st.Title.Render("404 - Page not found") + "\n\n"
		body += fmt.Sprintf("There is no tutorial at %s.", st.Selected.Render(m.unit.Path)) + "\n\n"
		body += st.Help.Render("esc back to all tutorials")
		return st.Box.Render(body)
	}

	lines := m.text.Lines
	if h := m.bodyHeight(); h > 0 {
		end := min(m.offset+h, len(lines))
		lines = lines[m.offset:end]
	}

	help := "↑↓ scroll  tab/1-9 select snippet  c copy  [ ] prev/next tool  esc back"
	if m.snippets > 0 {
		help = fmt.Sprintf("%d snippets  ·  %s", m.snippets, help)
	}
	return strings.Join(lines, "\n") + "\n\n" + st.Help.Render(help)
}
