package home

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"devtoolshub/internal/catalog"
	"devtoolshub/internal/tui/messages"
	"devtoolshub/internal/tui/styles"
)

// Model is the home screen: a search box over the catalog and a cursor list of
// the matching tools. A new Model starts with an empty query.
type Model struct {
	input   textinput.Model
	results []catalog.Entry
	cursor  int
	styles  styles.Styles
}

func New(st styles.Styles) Model {
	ti := textinput.New()
	ti.Placeholder = "Search tutorials..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 128
	ti.Width = 40
	ti.Focus()

	return Model{
		input:   ti,
		results: catalog.All(),
		styles:  st,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Query is the current search text.
func (m Model) Query() string {
	return m.input.Value()
}

// Results are the tools matching the query, in catalog order.
func (m Model) Results() []catalog.Entry {
	return m.results
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.AppearanceChangedMsg:
		m.styles = styles.For(msg.Mode)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyUp, tea.KeyShiftTab:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.KeyDown, tea.KeyTab:
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		case tea.KeyEnter:
			if len(m.results) == 0 {
				return m, nil
			}
			selected := m.results[m.cursor]
			return m, func() tea.Msg {
				return messages.NavigateMsg{Path: selected.Path}
			}
		case tea.KeyEsc:
			if m.input.Value() == "" {
				return m, tea.Quit
			}
			m.input.SetValue("")
			m.refilter()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refilter()
	return m, cmd
}

func (m *Model) refilter() {
	m.results = catalog.Filter(catalog.All(), strings.TrimSpace(m.input.Value()))
	if m.cursor >= len(m.results) {
		m.cursor = max(len(m.results)-1, 0)
	}
}

func (m Model) View() string {
	st := m.styles
	content := st.Title.Render("Dev-Tools Mastery Hub") + "\n"
	content += st.Subtitle.Render(fmt.Sprintf("%d Tools Covered", catalog.Len())) + "\n\n"
	content += m.input.View() + "\n\n"

	if len(m.results) == 0 {
		content += st.Dimmed.Render(fmt.Sprintf("No tutorials match %q.", strings.TrimSpace(m.input.Value()))) + "\n"
	}
	for i, e := range m.results {
		cursor := "  "
		nameStyle := lipgloss.NewStyle()
		descStyle := st.Dimmed

		if i == m.cursor {
			cursor = st.Selected.Render("> ")
			nameStyle = st.Selected
			descStyle = st.Subtitle
		}

		content += fmt.Sprintf("%s%s %-16s %s\n",
			cursor,
			e.Icon,
			nameStyle.Render(e.Title),
			descStyle.Render(truncate(e.Description, 60)),
		)
	}

	content += "\n" + st.Help.Render("type to search  ↑↓ navigate  enter open  ctrl+t appearance  esc clear/quit")

	return st.Box.Render(content)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
