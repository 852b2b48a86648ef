package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the entries whose title contains query, ignoring case. The query
// is matched literally and the relative order of entries is preserved. An empty
// query returns a copy of entries.
func Filter(entries []Entry, query string) []Entry {
	out := make([]Entry, 0, len(entries))
	if query == "" {
		return append(out, entries...)
	}

	// A Caser keeps state between calls and must not be shared.
	fold := cases.Fold()
	needle := fold.String(query)
	for _, e := range entries {
		if strings.Contains(fold.String(e.Title), needle) {
			out = append(out, e)
		}
	}
	return out
}

// Search filters the full catalog.
func Search(query string) []Entry {
	return Filter(entries[:], query)
}
