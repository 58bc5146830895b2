package bleve

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/blevesearch/bleve/v2"
	blevesearch "github.com/blevesearch/bleve/v2/search"

	"github.com/kailas-cloud/seekr/internal/db"
	"github.com/kailas-cloud/seekr/internal/db/query"
)

const defaultSuggestSize = 5

// Search runs a structured query. Completion suggestions are answered with a
// lowercase prefix match on the completion field.
func (s *Store) Search(ctx context.Context, index string, req *query.Request) (*db.SearchResult, error) {
	h, err := s.open(index, db.OpSearch)
	if err != nil {
		return nil, err
	}

	q, err := translate(req.Query)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Reason: err.Error(), Err: db.ErrRejected}
	}

	sreq := bleve.NewSearchRequestOptions(q, max(req.Size, 0), max(req.From, 0), false)
	sreq.Fields = []string{sourceField}
	sreq.SortBy(sortOrder(req.Sort))

	res, err := h.idx.SearchInContext(ctx, sreq)
	if err != nil {
		return nil, db.Unavailable(db.OpSearch, err)
	}

	out := &db.SearchResult{
		Took:  res.Took.Milliseconds(),
		Total: int(res.Total), //nolint:gosec // hit counts fit in int
		Hits:  make([]db.Hit, 0, len(res.Hits)),
	}
	for _, hit := range res.Hits {
		out.Hits = append(out.Hits, toHit(hit))
	}

	if req.Suggest != nil {
		out.Suggestions, err = h.complete(ctx, req.Suggest)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (h *handle) complete(ctx context.Context, c *query.Completion) ([]string, error) {
	size := c.Size
	if size <= 0 {
		size = defaultSuggestSize
	}
	sourceProp, ok := h.suggest[c.Field]
	if !ok {
		return nil, &db.Error{Op: db.OpSearch, Reason: "field [" + c.Field + "] is not a completion field", Err: db.ErrRejected}
	}

	pq := bleve.NewPrefixQuery(strings.ToLower(c.Prefix))
	pq.SetField(c.Field)

	// over-fetch so duplicates can be skipped without running short
	sreq := bleve.NewSearchRequestOptions(pq, size*4, 0, false)
	sreq.Fields = []string{sourceField}
	sreq.SortBy([]string{c.Field, "_id"})

	res, err := h.idx.SearchInContext(ctx, sreq)
	if err != nil {
		return nil, db.Unavailable(db.OpSearch, err)
	}

	out := make([]string, 0, size)
	seen := make(map[string]bool)
	for _, hit := range res.Hits {
		text := sourceString(hit, sourceProp)
		if text == "" {
			continue
		}
		if c.SkipDuplicates {
			if seen[text] {
				continue
			}
			seen[text] = true
		}
		out = append(out, text)
		if len(out) == size {
			break
		}
	}
	return out, nil
}

func toHit(m *blevesearch.DocumentMatch) db.Hit {
	hit := db.Hit{ID: m.ID, Score: m.Score}
	if src, ok := m.Fields[sourceField].(string); ok {
		hit.Source = json.RawMessage(src)
	}
	return hit
}

func sourceString(m *blevesearch.DocumentMatch, prop string) string {
	src, ok := m.Fields[sourceField].(string)
	if !ok {
		return ""
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(src), &doc); err != nil {
		return ""
	}
	var text string
	if err := json.Unmarshal(doc[prop], &text); err != nil {
		return ""
	}
	return text
}

// sortOrder renders sorts in bleve notation; "-" marks descending. The id breaks ties.
func sortOrder(sorts []query.Sort) []string {
	if len(sorts) == 0 {
		return []string{"-_score", "_id"}
	}
	out := make([]string, 0, len(sorts)+1)
	for _, s := range sorts {
		field := s.Field
		if s.Order == query.Desc {
			field = "-" + field
		}
		out = append(out, field)
	}
	return append(out, "_id")
}
