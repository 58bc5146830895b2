package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/seekr/internal/db"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	docrepo "github.com/kailas-cloud/seekr/internal/repository/document"
)

// Facet extracts the values of one field from a document.
type Facet func(d *domdoc.Document) []string

// CategoryFacet yields the document category.
func CategoryFacet(d *domdoc.Document) []string { return []string{d.Category()} }

// TagFacet yields the document tags.
func TagFacet(d *domdoc.Document) []string { return d.Tags() }

// MapHits hydrates hits into documents, keeping engine order.
func MapHits(hits []db.Hit) ([]domdoc.Document, error) {
	docs := make([]domdoc.Document, 0, len(hits))
	for _, h := range hits {
		doc, err := docrepo.Decode(h.ID, h.Source)
		if err != nil {
			return nil, fmt.Errorf("map hit: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// DistinctValues returns the sorted set of non-blank facet values across docs.
// It only sees the documents it is given, so it is not a corpus-wide count.
func DistinctValues(docs []domdoc.Document, facet Facet) []string {
	seen := make(map[string]struct{})
	for i := range docs {
		for _, v := range facet(&docs[i]) {
			if strings.TrimSpace(v) != "" {
				seen[v] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// MapSuggestions dedupes case-insensitively, keeping the first spelling, and caps at size.
func MapSuggestions(raw []string, size int) []string {
	out := make([]string, 0, min(len(raw), max(size, 0)))
	seen := make(map[string]bool, len(raw))
	for _, s := range raw {
		if len(out) >= size {
			break
		}
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
