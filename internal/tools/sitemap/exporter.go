// Package sitemap exports the catalog for static hosting: a sitemap.xml of
// every route and a catalog.json describing the tutorials and how they link.
package sitemap

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"devtoolshub/internal/content"
	"devtoolshub/internal/router"
)

const (
	SitemapFile = "sitemap.xml"
	CatalogFile = "catalog.json"

	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
)

// ErrNoBaseURL is returned by Export when no absolute base URL is given.
var ErrNoBaseURL = errors.New("sitemap: base URL is required")

type Tool struct {
	Path        string   `json:"path"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Snippets    int      `json:"snippets"`
	Related     []string `json:"related"`
	Group       int      `json:"group"`
}

type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type Group struct {
	ID            int      `json:"id"`
	Size          int      `json:"size"`
	Paths         []string `json:"paths"`
	InternalLinks int      `json:"internal_links"`
	ExternalLinks int      `json:"external_links"`
}

type Totals struct {
	Tools    int `json:"tools"`
	Snippets int `json:"snippets"`
	Links    int `json:"links"`
	Groups   int `json:"groups"`
}

type Catalog struct {
	GeneratedAt time.Time `json:"generated_at"`
	Totals      Totals    `json:"totals"`
	Tools       []Tool    `json:"tools"`
	Links       []Edge    `json:"links"`
	Groups      []Group   `json:"groups"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc      string `xml:"loc"`
	LastMod  string `xml:"lastmod,omitempty"`
	Priority string `xml:"priority,omitempty"`
}

// Build describes every tool route of table using the bundles in lib.
func Build(lib *content.Library, table *router.Table, now time.Time) Catalog {
	var (
		tools []Tool
		edges []Edge
		paths []string
	)
	for _, p := range table.Paths() {
		u := table.Resolve(p)
		entry, ok := u.Entry()
		if !ok {
			continue
		}
		t := Tool{
			Path:        entry.Path,
			Title:       entry.Title,
			Description: entry.Description,
			Icon:        entry.Icon,
			Related:     []string{},
		}
		if b, ok := lib.Bundle(u.Tool); ok {
			t.Snippets = len(b.Snippets())
			t.Related = append(t.Related, b.Related...)
			for _, r := range b.Related {
				edges = append(edges, Edge{Source: entry.Path, Target: r})
			}
		}
		tools = append(tools, t)
		paths = append(paths, entry.Path)
	}

	assignments := topicGroups(paths, edges)
	byID := make(map[int]*Group)
	snippets := 0
	for i := range tools {
		id := assignments[tools[i].Path]
		tools[i].Group = id
		snippets += tools[i].Snippets
		g, ok := byID[id]
		if !ok {
			g = &Group{ID: id}
			byID[id] = g
		}
		g.Size++
		g.Paths = append(g.Paths, tools[i].Path)
	}
	for _, e := range edges {
		src, okSrc := assignments[e.Source]
		dst, okDst := assignments[e.Target]
		if !okSrc || !okDst {
			continue
		}
		if src == dst {
			byID[src].InternalLinks++
			continue
		}
		byID[src].ExternalLinks++
		byID[dst].ExternalLinks++
	}

	groups := make([]Group, 0, len(byID))
	for _, g := range byID {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Size == groups[j].Size {
			return groups[i].ID < groups[j].ID
		}
		return groups[i].Size > groups[j].Size
	})

	if edges == nil {
		edges = []Edge{}
	}
	return Catalog{
		GeneratedAt: now.UTC(),
		Totals: Totals{
			Tools:    len(tools),
			Snippets: snippets,
			Links:    len(edges),
			Groups:   len(groups),
		},
		Tools:  tools,
		Links:  edges,
		Groups: groups,
	}
}

// Export writes sitemap.xml and catalog.json into outDir and returns the
// catalog it wrote.
func Export(lib *content.Library, table *router.Table, baseURL, outDir string) (Catalog, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return Catalog{}, ErrNoBaseURL
	}

	c := Build(lib, table, time.Now())

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Catalog{}, err
	}
	if err := writeSitemap(filepath.Join(outDir, SitemapFile), baseURL, table, c.GeneratedAt); err != nil {
		return Catalog{}, fmt.Errorf("write %s: %w", SitemapFile, err)
	}
	if err := writeCatalog(filepath.Join(outDir, CatalogFile), c); err != nil {
		return Catalog{}, fmt.Errorf("write %s: %w", CatalogFile, err)
	}
	return c, nil
}

func writeSitemap(outPath, baseURL string, table *router.Table, at time.Time) error {
	set := urlSet{XMLNS: sitemapNS}
	lastMod := at.Format("2006-01-02")
	for _, p := range table.Paths() {
		priority := "0.8"
		if table.Resolve(p).Kind == router.KindHome {
			priority = "1.0"
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:      baseURL + p,
			LastMod:  lastMod,
			Priority: priority,
		})
	}

	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	data = append([]byte(xml.Header), data...)
	return os.WriteFile(outPath, append(data, '\n'), 0o644)
}

func writeCatalog(outPath string, c Catalog) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}
