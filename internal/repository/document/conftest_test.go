package document

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/seekr/internal/db"
	"github.com/kailas-cloud/seekr/internal/db/query"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
)

// mockEngine implements the consumer interface for tests.
type mockEngine struct {
	pingFn   func(ctx context.Context) error
	indexFn  func(ctx context.Context, index, id string, source []byte, refresh bool) error
	getFn    func(ctx context.Context, index, id string) ([]byte, error)
	updateFn func(ctx context.Context, index, id string, partial []byte, refresh bool) error
	deleteFn func(ctx context.Context, index, id string, refresh bool) error
	searchFn func(ctx context.Context, index string, req *query.Request) (*db.SearchResult, error)

	updates int
	deletes int
}

func (m *mockEngine) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func (m *mockEngine) IndexDocument(ctx context.Context, index, id string, source []byte, refresh bool) error {
	if m.indexFn != nil {
		return m.indexFn(ctx, index, id, source, refresh)
	}
	return nil
}

func (m *mockEngine) GetDocument(ctx context.Context, index, id string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, index, id)
	}
	return nil, &db.Error{Op: db.OpGet, Status: 404, Err: db.ErrDocumentNotFound}
}

func (m *mockEngine) UpdateDocument(ctx context.Context, index, id string, partial []byte, refresh bool) error {
	m.updates++
	if m.updateFn != nil {
		return m.updateFn(ctx, index, id, partial, refresh)
	}
	return nil
}

func (m *mockEngine) DeleteDocument(ctx context.Context, index, id string, refresh bool) error {
	m.deletes++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, index, id, refresh)
	}
	return nil
}

func (m *mockEngine) Search(ctx context.Context, index string, req *query.Request) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, index, req)
	}
	return &db.SearchResult{}, nil
}

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (*Repo, *mockEngine) {
	t.Helper()
	me := &mockEngine{}
	repo := New(me, "products").WithClock(func() time.Time { return testNow })
	return repo, me
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(s string) *string     { return &s }

func testDocument(t *testing.T) domdoc.Document {
	t.Helper()
	doc, err := domdoc.New("nike-air-max", domdoc.Attributes{
		Title:    "Nike Air Max 270",
		Content:  "Running shoes with a big air unit",
		Category: "shoes",
		Brand:    "Nike",
		Color:    "black",
		Tags:     []string{"running", "air"},
		Price:    floatPtr(150),
		Rating:   floatPtr(4.5),
	}, testNow.Add(-time.Hour))
	if err != nil {
		t.Fatalf("testDocument: %v", err)
	}
	return doc
}

const testSource = `{
	"title": "Nike Air Max 270",
	"content": "Running shoes with a big air unit",
	"category": "shoes",
	"brand": "Nike",
	"tags": ["running", "air"],
	"price": 150,
	"rating": 4.5,
	"popularity_score": 0.8,
	"is_boosted": true,
	"views": 3,
	"clicks": 1,
	"likes": 0,
	"saves": 0,
	"created_at": "2024-06-01T11:00:00Z",
	"updated_at": "2024-06-01T11:00:00Z"
}`
