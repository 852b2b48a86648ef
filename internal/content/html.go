package content

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/sync/singleflight"

	"devtoolshub/internal/catalog"
)

// DefaultCodeStyle is the chroma style used when none is configured.
const DefaultCodeStyle = "onedark"

// Page is a bundle prepared for the HTML templates.
type Page struct {
	Entry    catalog.Entry
	Title    string
	Intro    string
	Sections []PageSection
	Related  []RelatedLink
	Snippets int
}

// PageSection is a rendered section.
type PageSection struct {
	Heading string
	Blocks  []PageBlock
}

// PageBlock is a rendered block. Code holds highlighted markup; Raw holds the
// text placed on the clipboard.
type PageBlock struct {
	Kind    BlockKind
	Text    string
	Items   []string
	Code    template.HTML
	Raw     string
	Lang    string
	Caption string
	Index   int
}

// RelatedLink points at another tutorial.
type RelatedLink struct {
	Title string
	Icon  string
	Href  string
}

// HTMLRenderer turns bundles into Pages, highlighting code with chroma. Pages are
// rendered once per tool and cached; concurrent first requests share one render.
type HTMLRenderer struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter

	group singleflight.Group
	mu    sync.RWMutex
	cache map[catalog.Tool]*Page
}

// NewHTMLRenderer builds a renderer for the named chroma style. Unknown names
// fall back to chroma's default style.
func NewHTMLRenderer(styleName string) *HTMLRenderer {
	if styleName == "" {
		styleName = DefaultCodeStyle
	}
	return &HTMLRenderer{
		style:     styles.Get(styleName),
		formatter: chromahtml.New(chromahtml.TabWidth(4)),
		cache:     make(map[catalog.Tool]*Page),
	}
}

// Render returns the page for b, rendering it on first use.
func (r *HTMLRenderer) Render(b *Bundle) (*Page, error) {
	r.mu.RLock()
	cached, ok := r.cache[b.Tool]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	result, err, _ := r.group.Do(b.Tool.String(), func() (interface{}, error) {
		page, err := r.render(b)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.cache[b.Tool] = page
		r.mu.Unlock()
		return page, nil
	})
	if err != nil {
		return nil, err
	}

	page, ok := result.(*Page)
	if !ok {
		return nil, fmt.Errorf("render %s: unexpected result %T", b.Tool, result)
	}
	return page, nil
}

func (r *HTMLRenderer) render(b *Bundle) (*Page, error) {
	entry := b.Tool.Entry()
	page := &Page{
		Entry: entry,
		Title: b.Title,
		Intro: b.Intro,
	}

	index := 0
	for _, s := range b.Sections {
		section := PageSection{Heading: s.Heading}
		for _, blk := range s.Blocks {
			out := PageBlock{Kind: blk.Kind(), Caption: blk.Caption}
			switch out.Kind {
			case BlockParagraph:
				out.Text = blk.Text
			case BlockNote:
				out.Text = blk.Note
			case BlockWarning:
				out.Text = blk.Warning
			case BlockList:
				out.Items = blk.List
			case BlockSteps:
				out.Items = blk.Steps
			case BlockCode:
				index++
				code, err := r.highlight(blk.Lang, blk.Code)
				if err != nil {
					return nil, fmt.Errorf("highlight %s snippet %d: %w", b.Tool, index, err)
				}
				out.Code = code
				out.Raw = blk.Code
				out.Lang = blk.Lang
				out.Index = index
			}
			section.Blocks = append(section.Blocks, out)
		}
		page.Sections = append(page.Sections, section)
	}
	page.Snippets = index

	for _, e := range b.RelatedEntries() {
		page.Related = append(page.Related, RelatedLink{
			Title: e.Title,
			Icon:  e.Icon,
			Href:  LinkFrom(e.Path, b.Tool.Slug()),
		})
	}

	return page, nil
}

func (r *HTMLRenderer) highlight(lang, code string) (template.HTML, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.formatter.Format(&buf, r.style, iterator); err != nil {
		return "", err
	}
	// chroma escapes token text itself.
	return template.HTML(buf.String()), nil
}
