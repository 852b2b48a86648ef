package content

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

const codeIndent = "    "

// TextStyles are the lipgloss styles a TextRenderer draws with.
type TextStyles struct {
	Title    lipgloss.Style
	Intro    lipgloss.Style
	Heading  lipgloss.Style
	Body     lipgloss.Style
	Caption  lipgloss.Style
	Note     lipgloss.Style
	Warning  lipgloss.Style
	Marker   lipgloss.Style
	Selected lipgloss.Style
	Copied   lipgloss.Style
}

// TextRenderer lays a bundle out for terminals.
type TextRenderer struct {
	Styles TextStyles
	// CodeStyle is a chroma style name; empty disables highlighting.
	CodeStyle string
	// Width wraps prose when positive.
	Width int
}

// Text is a rendered bundle. Snippets maps a snippet index to the line its
// marker is on.
type Text struct {
	Lines    []string
	Snippets map[int]int
}

func (t Text) String() string {
	return strings.Join(t.Lines, "\n")
}

type textBuilder struct {
	lines []string
}

func (b *textBuilder) add(s string) {
	b.lines = append(b.lines, strings.Split(s, "\n")...)
}

func (b *textBuilder) blank() {
	b.lines = append(b.lines, "")
}

// Render draws b. selected and copied are snippet indexes to highlight; 0
// means none.
func (r TextRenderer) Render(b *Bundle, selected, copied int) Text {
	st := r.Styles
	prose := func(s lipgloss.Style) lipgloss.Style {
		if r.Width > 0 {
			return s.Width(r.Width)
		}
		return s
	}

	out := Text{Snippets: make(map[int]int)}
	var tb textBuilder

	entry := b.Tool.Entry()
	tb.add(st.Title.Render(entry.Icon + " " + b.Title))
	if b.Intro != "" {
		tb.blank()
		tb.add(prose(st.Intro).Render(b.Intro))
	}

	index := 0
	for _, s := range b.Sections {
		tb.blank()
		tb.add(st.Heading.Render(s.Heading))
		for _, blk := range s.Blocks {
			switch blk.Kind() {
			case BlockParagraph:
				tb.add(prose(st.Body).Render(blk.Text))
			case BlockList:
				for _, item := range blk.List {
					tb.add(prose(st.Body).Render("• " + item))
				}
			case BlockSteps:
				for i, item := range blk.Steps {
					tb.add(prose(st.Body).Render(fmt.Sprintf("%d. %s", i+1, item)))
				}
			case BlockNote:
				tb.add(prose(st.Note).Render("ℹ Note: " + blk.Note))
			case BlockWarning:
				tb.add(prose(st.Warning).Render("⚠ Important: " + blk.Warning))
			case BlockCode:
				index++
				out.Snippets[index] = len(tb.lines)
				tb.add(r.marker(index, blk.Caption, selected, copied))
				code := blk.Code
				if r.CodeStyle != "" {
					code = HighlightTerminal(blk.Lang, blk.Code, r.CodeStyle)
				}
				for _, line := range strings.Split(code, "\n") {
					tb.add(codeIndent + line)
				}
			}
		}
	}

	if related := b.RelatedEntries(); len(related) > 0 {
		titles := make([]string, 0, len(related))
		for _, e := range related {
			titles = append(titles, e.Icon+" "+e.Title)
		}
		tb.blank()
		tb.add(st.Heading.Render("Related tutorials"))
		tb.add(st.Body.Render(strings.Join(titles, "  ·  ")))
	}

	out.Lines = tb.lines
	return out
}

func (r TextRenderer) marker(index int, caption string, selected, copied int) string {
	label := fmt.Sprintf("[%d]", index)
	if caption != "" {
		label += " " + caption
	}

	var line string
	if index == selected {
		line = r.Styles.Selected.Render("▶ " + label)
	} else {
		line = r.Styles.Marker.Render("  " + label)
	}
	if index == copied {
		line += " " + r.Styles.Copied.Render("✓ copied!")
	}
	return line
}

// HighlightTerminal colours code with ANSI 256-colour escapes. When highlighting
// fails the plain code is returned.
func HighlightTerminal(lang, code, styleName string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return code
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var b strings.Builder
	if err := formatter.Format(&b, styles.Get(styleName), iterator); err != nil {
		return code
	}
	return strings.TrimRight(b.String(), "\n")
}
