package content

import (
	"fmt"
	"strings"

	"devtoolshub/internal/catalog"
	"devtoolshub/internal/router"
)

func checkRelated(b *Bundle, table *router.Table) error {
	self := b.Tool.Entry().Path
	for _, target := range b.Related {
		if target == self {
			return fmt.Errorf("%w: %s links to itself", ErrBrokenLink, b.Tool)
		}
		u := table.Resolve(target)
		if u.Kind != router.KindTool {
			return fmt.Errorf("%w: %s -> %q", ErrBrokenLink, b.Tool, target)
		}
	}
	return nil
}

// RelatedEntries returns the catalog entries the bundle links to.
func (b *Bundle) RelatedEntries() []catalog.Entry {
	out := make([]catalog.Entry, 0, len(b.Related))
	for _, target := range b.Related {
		if e, ok := catalog.Lookup(target); ok {
			out = append(out, e)
		}
	}
	return out
}

// LinkFrom adds a "from" marker to an internal href so the server can attribute
// navigation between tutorials. Fragments are kept at the end and hrefs that
// already carry a marker are returned unchanged.
func LinkFrom(href, origin string) string {
	if origin == "" || strings.Contains(href, "from=") {
		return href
	}

	fragment := ""
	if idx := strings.Index(href, "#"); idx >= 0 {
		fragment = href[idx:]
		href = href[:idx]
	}

	if strings.Contains(href, "?") {
		href = href + "&from=" + origin
	} else {
		href = href + "?from=" + origin
	}

	return href + fragment
}
