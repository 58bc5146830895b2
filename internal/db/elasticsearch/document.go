package elasticsearch

import (
	"bytes"
	"context"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/seekr/internal/db"
	"github.com/kailas-cloud/seekr/internal/db/wire"
)

// IndexDocument creates or replaces a document by id.
func (s *Store) IndexDocument(ctx context.Context, index, id string, source []byte, refresh bool) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(source),
		Refresh:    refreshParam(refresh),
	}.Do(ctx, s.client)
	if err != nil {
		return db.Unavailable(db.OpIndex, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return wire.Classify(db.OpIndex, res.StatusCode, res.Body)
	}
	return nil
}

// GetDocument returns the stored _source of a document.
func (s *Store) GetDocument(ctx context.Context, index, id string) ([]byte, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := esapi.GetRequest{Index: index, DocumentID: id}.Do(ctx, s.client)
	if err != nil {
		return nil, db.Unavailable(db.OpGet, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, wire.Classify(db.OpGet, res.StatusCode, res.Body)
	}
	return wire.DecodeGet(res.Body)
}

// UpdateDocument merges partial fields into an existing document.
func (s *Store) UpdateDocument(ctx context.Context, index, id string, partial []byte, refresh bool) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := esapi.UpdateRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(wire.UpdateBody(partial)),
		Refresh:    refreshParam(refresh),
	}.Do(ctx, s.client)
	if err != nil {
		return db.Unavailable(db.OpUpdate, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return wire.Classify(db.OpUpdate, res.StatusCode, res.Body)
	}
	return nil
}

// DeleteDocument removes a document by id.
func (s *Store) DeleteDocument(ctx context.Context, index, id string, refresh bool) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := esapi.DeleteRequest{
		Index:      index,
		DocumentID: id,
		Refresh:    refreshParam(refresh),
	}.Do(ctx, s.client)
	if err != nil {
		return db.Unavailable(db.OpDelete, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return wire.Classify(db.OpDelete, res.StatusCode, res.Body)
	}
	return nil
}
