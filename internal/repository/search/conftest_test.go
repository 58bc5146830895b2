package search

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/kailas-cloud/seekr/internal/db"
	"github.com/kailas-cloud/seekr/internal/db/query"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
)

// mockExecutor implements the consumer interface for tests.
type mockExecutor struct {
	executeFn func(ctx context.Context, req *query.Request) (*db.SearchResult, error)
	last      *query.Request
}

func (m *mockExecutor) Execute(ctx context.Context, req *query.Request) (*db.SearchResult, error) {
	m.last = req
	if m.executeFn != nil {
		return m.executeFn(ctx, req)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockExecutor) {
	t.Helper()
	me := &mockExecutor{}
	return New(me), me
}

func hit(t *testing.T, id string, src map[string]any) db.Hit {
	t.Helper()
	raw, err := json.Marshal(src)
	if err != nil {
		t.Fatalf("marshal hit: %v", err)
	}
	return db.Hit{ID: id, Score: 1, Source: raw}
}

func testDoc(t *testing.T, id string, attrs domdoc.Attributes) domdoc.Document {
	t.Helper()
	doc, err := domdoc.New(id, attrs, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("testDoc: %v", err)
	}
	return doc
}

// decode renders a built request and decodes it back into generic JSON.
func decode(t *testing.T, req *query.Request) map[string]any {
	t.Helper()
	raw, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal request: %v", err)
	}
	return m
}

func boolOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	q, ok := body["query"].(map[string]any)
	if !ok {
		t.Fatalf("query missing in %v", body)
	}
	b, ok := q["bool"].(map[string]any)
	if !ok {
		t.Fatalf("bool missing in %v", q)
	}
	return b
}

func clauses(b map[string]any, key string) []any {
	c, _ := b[key].([]any)
	return c
}
