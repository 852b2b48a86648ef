// Package content loads the tutorial bundles shipped with the binary and checks
// them against the catalog and the route table.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"devtoolshub/internal/catalog"
	"devtoolshub/internal/router"
)

//go:embed bundles/*.yaml
var bundleFS embed.FS

const bundleDir = "bundles"

var (
	// ErrMissingBundle means a catalog tool has no content bundle.
	ErrMissingBundle = errors.New("missing content bundle")
	// ErrUnknownBundle means a bundle file does not belong to any catalog tool.
	ErrUnknownBundle = errors.New("bundle without catalog entry")
	// ErrBrokenLink means a bundle links to a path the route table does not know.
	ErrBrokenLink = errors.New("broken related link")
	// ErrInvalidBlock means a block sets no kind or more than one.
	ErrInvalidBlock = errors.New("invalid content block")
	// ErrNoSnippet is returned by Snippet for an out of range index.
	ErrNoSnippet = errors.New("no such snippet")
)

// BlockKind tells renderers how to draw a block.
type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockList      BlockKind = "list"
	BlockSteps     BlockKind = "steps"
	BlockCode      BlockKind = "code"
	BlockNote      BlockKind = "note"
	BlockWarning   BlockKind = "warning"
)

// Bundle is the static content of one tutorial page.
type Bundle struct {
	Tool     catalog.Tool `yaml:"-"`
	Title    string       `yaml:"title"`
	Intro    string       `yaml:"intro"`
	Related  []string     `yaml:"related"`
	Sections []Section    `yaml:"sections"`
}

// Section is a headed group of blocks.
type Section struct {
	Heading string  `yaml:"heading"`
	Blocks  []Block `yaml:"blocks"`
}

// Block holds exactly one kind of content.
type Block struct {
	Text    string   `yaml:"p"`
	List    []string `yaml:"list"`
	Steps   []string `yaml:"steps"`
	Code    string   `yaml:"code"`
	Lang    string   `yaml:"lang"`
	Caption string   `yaml:"caption"`
	Note    string   `yaml:"note"`
	Warning string   `yaml:"warning"`
}

// Kind reports the block kind, or "" if the block is empty or ambiguous.
func (b Block) Kind() BlockKind {
	var kinds []BlockKind
	if b.Text != "" {
		kinds = append(kinds, BlockParagraph)
	}
	if len(b.List) > 0 {
		kinds = append(kinds, BlockList)
	}
	if len(b.Steps) > 0 {
		kinds = append(kinds, BlockSteps)
	}
	if b.Code != "" {
		kinds = append(kinds, BlockCode)
	}
	if b.Note != "" {
		kinds = append(kinds, BlockNote)
	}
	if b.Warning != "" {
		kinds = append(kinds, BlockWarning)
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// Snippet is a copyable code block, numbered from 1 in page order.
type Snippet struct {
	Index   int
	Section string
	Caption string
	Lang    string
	Code    string
}

// Snippets lists the code blocks of the bundle in page order.
func (b *Bundle) Snippets() []Snippet {
	var out []Snippet
	for _, s := range b.Sections {
		for _, blk := range s.Blocks {
			if blk.Kind() != BlockCode {
				continue
			}
			out = append(out, Snippet{
				Index:   len(out) + 1,
				Section: s.Heading,
				Caption: blk.Caption,
				Lang:    blk.Lang,
				Code:    blk.Code,
			})
		}
	}
	return out
}

// Snippet returns the n-th snippet (1-based).
func (b *Bundle) Snippet(n int) (Snippet, error) {
	snippets := b.Snippets()
	if n < 1 || n > len(snippets) {
		return Snippet{}, fmt.Errorf("%w: %s has %d snippets, asked for %d", ErrNoSnippet, b.Tool, len(snippets), n)
	}
	return snippets[n-1], nil
}

func (b *Bundle) validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%s: missing title", b.Tool)
	}
	for i, s := range b.Sections {
		for j, blk := range s.Blocks {
			if blk.Kind() == "" {
				return fmt.Errorf("%w: %s section %d block %d", ErrInvalidBlock, b.Tool, i+1, j+1)
			}
		}
	}
	return nil
}

// Library holds one bundle per catalog tool.
type Library struct {
	bundles map[catalog.Tool]*Bundle
}

// Bundles is the embedded bundle directory.
func Bundles() fs.FS {
	sub, err := fs.Sub(bundleFS, bundleDir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Load parses the embedded bundles and verifies them against the default route table.
func Load() (*Library, error) {
	return LoadFS(Bundles(), router.Default())
}

// LoadFS parses "<slug>.yaml" files from fsys. Every catalog tool must have a
// bundle, every bundle must belong to a tool, and related links must resolve in
// table.
func LoadFS(fsys fs.FS, table *router.Table) (*Library, error) {
	lib := &Library{bundles: make(map[catalog.Tool]*Bundle, catalog.Len())}

	known := make(map[string]catalog.Tool, catalog.Len())
	for _, tool := range catalog.Tools() {
		known[tool.Slug()+".yaml"] = tool
	}

	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		tool, ok := known[path.Base(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownBundle, name)
		}

		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		var b Bundle
		if err := yaml.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		b.Tool = tool
		if err := b.validate(); err != nil {
			return nil, err
		}
		if err := checkRelated(&b, table); err != nil {
			return nil, err
		}
		lib.bundles[tool] = &b
	}

	for _, tool := range catalog.Tools() {
		if _, ok := lib.bundles[tool]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingBundle, tool)
		}
	}

	return lib, nil
}

// Bundle returns the content for tool.
func (l *Library) Bundle(tool catalog.Tool) (*Bundle, bool) {
	b, ok := l.bundles[tool]
	return b, ok
}

// ForUnit returns the bundle behind a resolved tool route.
func (l *Library) ForUnit(u router.Unit) (*Bundle, bool) {
	if u.Kind != router.KindTool {
		return nil, false
	}
	return l.Bundle(u.Tool)
}

// SnippetCount reports the total number of copyable snippets in the library.
func (l *Library) SnippetCount() int {
	n := 0
	for _, b := range l.bundles {
		n += len(b.Snippets())
	}
	return n
}
