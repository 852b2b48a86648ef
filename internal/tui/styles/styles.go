// Package styles holds the lipgloss styles of the terminal browser, one set per
// appearance mode.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"devtoolshub/internal/appearance"
	"devtoolshub/internal/content"
)

// Palette is the set of colours a mode draws with.
type Palette struct {
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Dim     lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color
}

var (
	DarkPalette = Palette{
		Accent:  lipgloss.Color("#818CF8"),
		Text:    lipgloss.Color("#E2E8F0"),
		Muted:   lipgloss.Color("#94A3B8"),
		Dim:     lipgloss.Color("#3D4250"),
		Success: lipgloss.Color("#39FF14"),
		Warning: lipgloss.Color("#FACC15"),
		Info:    lipgloss.Color("#00F0FF"),
	}
	LightPalette = Palette{
		Accent:  lipgloss.Color("#4F46E5"),
		Text:    lipgloss.Color("#0F172A"),
		Muted:   lipgloss.Color("#475569"),
		Dim:     lipgloss.Color("#94A3B8"),
		Success: lipgloss.Color("#15803D"),
		Warning: lipgloss.Color("#A16207"),
		Info:    lipgloss.Color("#1D4ED8"),
	}
)

// Styles are the rendered styles for one mode.
type Styles struct {
	Mode    appearance.Mode
	Palette Palette

	Brand     lipgloss.Style
	Nav       lipgloss.Style
	NavActive lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Selected  lipgloss.Style
	Dimmed    lipgloss.Style
	Success   lipgloss.Style
	Err       lipgloss.Style
	Help      lipgloss.Style
	Box       lipgloss.Style
	Header    lipgloss.Style
}

// For returns the styles of mode.
func For(mode appearance.Mode) Styles {
	p := LightPalette
	if mode == appearance.Dark {
		p = DarkPalette
	}

	return Styles{
		Mode:    mode,
		Palette: p,

		Brand: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent),
		Nav: lipgloss.NewStyle().
			Foreground(p.Muted),
		NavActive: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true).
			Underline(true),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Info),
		Selected: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		Dimmed: lipgloss.NewStyle().
			Foreground(p.Dim),
		Success: lipgloss.NewStyle().
			Foreground(p.Success),
		Err: lipgloss.NewStyle().
			Foreground(p.Warning),
		Help: lipgloss.NewStyle().
			Foreground(p.Dim).
			Italic(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(1, 2),
		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Dim),
	}
}

// Text returns the styles the content text renderer draws tutorials with.
func (s Styles) Text() content.TextStyles {
	return content.TextStyles{
		Title:    s.Title,
		Intro:    lipgloss.NewStyle().Foreground(s.Palette.Text),
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(s.Palette.Info),
		Body:     lipgloss.NewStyle().Foreground(s.Palette.Text),
		Caption:  lipgloss.NewStyle().Foreground(s.Palette.Muted).Italic(true),
		Note:     lipgloss.NewStyle().Foreground(s.Palette.Info),
		Warning:  lipgloss.NewStyle().Foreground(s.Palette.Warning).Bold(true),
		Marker:   s.Dimmed,
		Selected: s.Selected,
		Copied:   s.Success,
	}
}

// CodeStyle picks a chroma style that reads well on the mode's background.
func (s Styles) CodeStyle() string {
	if s.Mode == appearance.Dark {
		return "onedark"
	}
	return "github"
}
