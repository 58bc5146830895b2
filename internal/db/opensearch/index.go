package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/kailas-cloud/seekr/internal/db"
	"github.com/kailas-cloud/seekr/internal/db/wire"
)

// CreateIndex creates an index from the given definition.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("invalid index definition: %w", err)
	}
	body, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("marshal index definition: %w", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := opensearchapi.IndicesCreateRequest{
		Index: def.Name,
		Body:  bytes.NewReader(body),
	}.Do(ctx, s.client)
	if err != nil {
		return db.Unavailable(db.OpCreateIndex, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return wire.Classify(db.OpCreateIndex, res.StatusCode, res.Body)
	}
	return nil
}

// IndexExists reports whether the named index exists.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := opensearchapi.IndicesExistsRequest{Index: []string{name}}.Do(ctx, s.client)
	if err != nil {
		return false, db.Unavailable(db.OpIndexExists, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, wire.Classify(db.OpIndexExists, res.StatusCode, res.Body)
	}
}

// DeleteIndex removes an index by name.
func (s *Store) DeleteIndex(ctx context.Context, name string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := opensearchapi.IndicesDeleteRequest{Index: []string{name}}.Do(ctx, s.client)
	if err != nil {
		return db.Unavailable(db.OpDeleteIndex, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return wire.Classify(db.OpDeleteIndex, res.StatusCode, res.Body)
	}
	return nil
}
