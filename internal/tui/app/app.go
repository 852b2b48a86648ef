package app

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"devtoolshub/internal/appearance"
	"devtoolshub/internal/catalog"
	"devtoolshub/internal/clipboard"
	"devtoolshub/internal/content"
	"devtoolshub/internal/router"
	"devtoolshub/internal/tui/home"
	"devtoolshub/internal/tui/messages"
	"devtoolshub/internal/tui/page"
	"devtoolshub/internal/tui/styles"
)

// PrefsKey is the store key the terminal browser keeps its appearance under.
const PrefsKey = "terminal"

// headerHeight is the brand line, the nav line and the border under them.
const headerHeight = 3

// Options configure the browser. Library is required.
type Options struct {
	Library *content.Library
	Prefs   appearance.Store
	Copier  *clipboard.Copier
	Logger  *zap.Logger
	Mode    appearance.Mode
	Start   string
}

type prefsSavedMsg struct {
	err error
}

// Model is the top-level application model: the shell header plus the screen
// for the navigator's current route.
type Model struct {
	nav        *router.Navigator
	library    *content.Library
	prefs      appearance.Store
	copier     *clipboard.Copier
	logger     *zap.Logger
	mode       appearance.Mode
	styles     styles.Styles
	current    tea.Model
	windowSize tea.WindowSizeMsg
}

func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Copier == nil {
		opts.Copier = clipboard.New(opts.Logger)
	}
	if opts.Start == "" {
		opts.Start = router.HomePath
	}

	m := Model{
		nav:     router.NewNavigator(router.Default(), opts.Start),
		library: opts.Library,
		prefs:   opts.Prefs,
		copier:  opts.Copier,
		logger:  opts.Logger,
		mode:    opts.Mode,
		styles:  styles.For(opts.Mode),
	}
	m.current = m.screenFor(m.nav.Current())
	return m
}

// Mode is the active appearance.
func (m Model) Mode() appearance.Mode { return m.mode }

// Current is the route on screen.
func (m Model) Current() router.Unit { return m.nav.Current() }

func (m Model) Init() tea.Cmd {
	return m.current.Init()
}

func (m Model) screenFor(u router.Unit) tea.Model {
	if u.Kind == router.KindHome {
		return home.New(m.styles)
	}
	return page.New(u, m.library, m.copier, m.styles)
}

func (m Model) bodySize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.windowSize.Width, Height: max(m.windowSize.Height-headerHeight, 0)}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowSize = msg
		updated, cmd := m.current.Update(m.bodySize())
		m.current = updated
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			return m.toggleAppearance()
		}

	case messages.NavigateMsg:
		return m.open(msg.Path)

	case messages.BackMsg:
		return m.open(router.HomePath)

	case prefsSavedMsg:
		if msg.err != nil {
			m.logger.Warn("save appearance", zap.Error(msg.err))
		}
		return m, nil
	}

	updated, cmd := m.current.Update(msg)
	m.current = updated
	return m, cmd
}

// open commits path on the navigator and swaps in a fresh screen, so the home
// search query does not survive leaving home.
func (m Model) open(path string) (tea.Model, tea.Cmd) {
	u := m.nav.Navigate(path)
	m.current = m.screenFor(u)
	size := m.bodySize()
	return m, tea.Batch(m.current.Init(), func() tea.Msg { return size })
}

func (m Model) toggleAppearance() (tea.Model, tea.Cmd) {
	m.mode = m.mode.Toggle()
	m.styles = styles.For(m.mode)
	updated, cmd := m.current.Update(messages.AppearanceChangedMsg{Mode: m.mode})
	m.current = updated
	return m, tea.Batch(cmd, m.savePrefs(m.mode))
}

func (m Model) savePrefs(mode appearance.Mode) tea.Cmd {
	if m.prefs == nil {
		return nil
	}
	store := m.prefs
	return func() tea.Msg {
		return prefsSavedMsg{err: store.Save(context.Background(), PrefsKey, mode)}
	}
}

func (m Model) header() string {
	st := m.styles
	current := m.nav.Current()

	brand := st.Brand.Render("🛠️ Dev-Tools Hub")
	modeLabel := st.Help.Render("ctrl+t " + m.mode.Toggle().String() + " mode")

	links := make([]string, 0, catalog.Len()+1)
	homeStyle := st.Nav
	if current.Kind == router.KindHome {
		homeStyle = st.NavActive
	}
	links = append(links, homeStyle.Render("Home"))
	for _, e := range catalog.All() {
		style := st.Nav
		if e.Path == current.Path {
			style = st.NavActive
		}
		links = append(links, style.Render(e.Title))
	}

	nav := strings.Join(links, st.Dimmed.Render(" · "))
	if m.windowSize.Width > 0 {
		nav = lipgloss.NewStyle().MaxWidth(m.windowSize.Width).Render(nav)
	}
	return st.Header.Render(brand + "  " + modeLabel + "\n" + nav)
}

func (m Model) View() string {
	return m.header() + "\n" + m.current.View()
}
