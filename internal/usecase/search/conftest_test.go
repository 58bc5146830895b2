package search

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kailas-cloud/seekr/internal/domain"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/domain/search/result"
)

// --- Mocks ---

type mockSearcher struct {
	searchFn     func(ctx context.Context, req *request.Request) (result.Result, error)
	suggestFn    func(ctx context.Context, prefix string, size int) ([]string, error)
	similarFn    func(ctx context.Context, doc *domdoc.Document, limit int) ([]domdoc.Document, error)
	forProfileFn func(ctx context.Context, p interaction.Profile, size int) ([]domdoc.Document, error)
	popularFn    func(ctx context.Context, size int) ([]domdoc.Document, error)
	facetErr     error

	lastReq      *request.Request
	lastSize     int
	popularCalls int
	suggestCalls int
}

func (m *mockSearcher) Search(ctx context.Context, req *request.Request) (result.Result, error) {
	m.lastReq = req
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return result.New(nil, 0, 1, req.Page(), req.PageSize()), nil
}

func (m *mockSearcher) ByCategory(ctx context.Context, category string, opts ...request.Option) (result.Result, error) {
	req := request.New(append(opts, request.WithCategory(category))...)
	return m.Search(ctx, &req)
}

func (m *mockSearcher) ByTags(ctx context.Context, tags []string, opts ...request.Option) (result.Result, error) {
	req := request.New(append(opts, request.WithTags(tags...))...)
	return m.Search(ctx, &req)
}

func (m *mockSearcher) Suggest(ctx context.Context, prefix string, size int) ([]string, error) {
	m.suggestCalls++
	m.lastSize = size
	if m.suggestFn != nil {
		return m.suggestFn(ctx, prefix, size)
	}
	return []string{}, nil
}

func (m *mockSearcher) Similar(ctx context.Context, doc *domdoc.Document, limit int) ([]domdoc.Document, error) {
	m.lastSize = limit
	if m.similarFn != nil {
		return m.similarFn(ctx, doc, limit)
	}
	return nil, nil
}

func (m *mockSearcher) ForProfile(ctx context.Context, p interaction.Profile, size int) ([]domdoc.Document, error) {
	m.lastSize = size
	if m.forProfileFn != nil {
		return m.forProfileFn(ctx, p, size)
	}
	return nil, nil
}

func (m *mockSearcher) Popular(ctx context.Context, size int) ([]domdoc.Document, error) {
	m.popularCalls++
	m.lastSize = size
	if m.popularFn != nil {
		return m.popularFn(ctx, size)
	}
	return nil, nil
}

func (m *mockSearcher) Categories(_ context.Context, fetchLimit int) ([]string, error) {
	m.lastSize = fetchLimit
	if m.facetErr != nil {
		return nil, m.facetErr
	}
	return []string{"apparel", "shoes"}, nil
}

func (m *mockSearcher) Tags(_ context.Context, fetchLimit int) ([]string, error) {
	m.lastSize = fetchLimit
	if m.facetErr != nil {
		return nil, m.facetErr
	}
	return []string{"running", "sale"}, nil
}

type mockDocs struct {
	docs map[string]domdoc.Document
}

func (m *mockDocs) Get(_ context.Context, id string) (domdoc.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return domdoc.Document{}, fmt.Errorf("get %s: %w", id, domain.ErrNotFound)
	}
	return doc, nil
}

type mockProfiles struct {
	profile interaction.Profile
	err     error
	lastN   int
}

func (m *mockProfiles) Profile(_ context.Context, _ string, n int) (interaction.Profile, error) {
	m.lastN = n
	return m.profile, m.err
}

// --- Helpers ---

func testDoc(t *testing.T, id, title, category string) domdoc.Document {
	t.Helper()
	doc, err := domdoc.New(id, domdoc.Attributes{Title: title, Category: category},
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("testDoc: %v", err)
	}
	return doc
}

func newTestService(t *testing.T) (*Service, *mockSearcher, *mockDocs) {
	t.Helper()
	ms := &mockSearcher{}
	md := &mockDocs{docs: map[string]domdoc.Document{
		"nike": testDoc(t, "nike", "Nike Air Max 270", "shoes"),
	}}
	return New(ms, md), ms, md
}

func ids(docs []domdoc.Document) []string {
	out := make([]string, len(docs))
	for i := range docs {
		out[i] = docs[i].ID()
	}
	return out
}
