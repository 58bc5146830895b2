package bleve

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blevesearch/bleve/v2"

	"github.com/kailas-cloud/seekr/internal/db"
)

// IndexDocument creates or replaces a document. Writes are visible immediately, so refresh is ignored.
func (s *Store) IndexDocument(_ context.Context, index, id string, source []byte, _ bool) error {
	h, err := s.open(index, db.OpIndex)
	if err != nil {
		return err
	}
	return h.put(id, source)
}

// GetDocument returns the stored source of a document.
func (s *Store) GetDocument(ctx context.Context, index, id string) ([]byte, error) {
	h, err := s.open(index, db.OpGet)
	if err != nil {
		return nil, err
	}
	return h.get(ctx, id)
}

// UpdateDocument merges top-level fields into the stored source and reindexes it.
func (s *Store) UpdateDocument(ctx context.Context, index, id string, partial []byte, _ bool) error {
	h, err := s.open(index, db.OpUpdate)
	if err != nil {
		return err
	}

	src, err := h.get(ctx, id)
	if err != nil {
		return err
	}

	var current, patch map[string]json.RawMessage
	if err := json.Unmarshal(src, &current); err != nil {
		return fmt.Errorf("decode stored source: %w", err)
	}
	if err := json.Unmarshal(partial, &patch); err != nil {
		return &db.Error{Op: db.OpUpdate, Reason: err.Error(), Err: db.ErrRejected}
	}
	for k, v := range patch {
		current[k] = v
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("encode merged source: %w", err)
	}
	return h.put(id, merged)
}

// DeleteDocument removes a document, reporting ErrDocumentNotFound when absent.
func (s *Store) DeleteDocument(ctx context.Context, index, id string, _ bool) error {
	h, err := s.open(index, db.OpDelete)
	if err != nil {
		return err
	}
	if _, err := h.get(ctx, id); err != nil {
		return err
	}
	if err := h.idx.Delete(id); err != nil {
		return db.Unavailable(db.OpDelete, err)
	}
	return nil
}

func (h *handle) put(id string, source []byte) error {
	var fields map[string]interface{}
	if err := json.Unmarshal(source, &fields); err != nil {
		return &db.Error{Op: db.OpIndex, Reason: "source is not a JSON object", Err: db.ErrRejected}
	}
	fields[sourceField] = string(source)

	if err := h.idx.Index(id, fields); err != nil {
		return db.Unavailable(db.OpIndex, err)
	}
	return nil
}

func (h *handle) get(ctx context.Context, id string) ([]byte, error) {
	req := bleve.NewSearchRequest(bleve.NewDocIDQuery([]string{id}))
	req.Fields = []string{sourceField}

	res, err := h.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, db.Unavailable(db.OpGet, err)
	}
	if len(res.Hits) == 0 {
		return nil, &db.Error{Op: db.OpGet, Err: db.ErrDocumentNotFound}
	}
	src, ok := res.Hits[0].Fields[sourceField].(string)
	if !ok {
		return nil, fmt.Errorf("document %s has no stored source", id)
	}
	return []byte(src), nil
}
