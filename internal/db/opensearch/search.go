package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/kailas-cloud/seekr/internal/db"
	"github.com/kailas-cloud/seekr/internal/db/query"
	"github.com/kailas-cloud/seekr/internal/db/wire"
)

// Search runs a structured query against one index.
func (s *Store) Search(ctx context.Context, index string, req *query.Request) (*db.SearchResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := opensearchapi.SearchRequest{
		Index: []string{index},
		Body:  bytes.NewReader(body),
	}.Do(ctx, s.client)
	if err != nil {
		return nil, db.Unavailable(db.OpSearch, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, wire.Classify(db.OpSearch, res.StatusCode, res.Body)
	}
	return wire.DecodeSearch(res.Body)
}
