package chi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kailas-cloud/seekr/internal/domain"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/seekr/internal/usecase/health"
)

// --- Fakes ---

type fakeDocuments struct {
	getFn func(ctx context.Context, id string) (domdoc.Document, error)
}

func (f *fakeDocuments) Get(ctx context.Context, id string) (domdoc.Document, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return domdoc.Document{}, fmt.Errorf("get %s: %w", id, domain.ErrNotFound)
}

type fakeSearch struct {
	searchFn    func(ctx context.Context, opts ...request.Option) (result.Result, error)
	suggestFn   func(ctx context.Context, prefix string) ([]string, error)
	recommendFn func(ctx context.Context, id string, limit int) ([]domdoc.Document, error)
}

func (f *fakeSearch) Search(ctx context.Context, opts ...request.Option) (result.Result, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, opts...)
	}
	req := request.New(opts...)
	return result.New(nil, 0, 0, req.Page(), req.PageSize()), nil
}

func (f *fakeSearch) Suggest(ctx context.Context, prefix string) ([]string, error) {
	if f.suggestFn != nil {
		return f.suggestFn(ctx, prefix)
	}
	return []string{}, nil
}

func (f *fakeSearch) Recommend(ctx context.Context, id string, limit int) ([]domdoc.Document, error) {
	if f.recommendFn != nil {
		return f.recommendFn(ctx, id, limit)
	}
	return nil, nil
}

type fakeHealth struct {
	report healthuc.Report
}

func (f *fakeHealth) Check(context.Context) healthuc.Report { return f.report }

// --- Helpers ---

type testAPI struct {
	docs    *fakeDocuments
	search  *fakeSearch
	health  *fakeHealth
	handler http.Handler
}

func newTestAPI(t *testing.T, apiKeys ...string) *testAPI {
	t.Helper()
	a := &testAPI{
		docs:   &fakeDocuments{},
		search: &fakeSearch{},
		health: &fakeHealth{report: healthuc.Report{
			Status:  healthuc.Healthy,
			Message: "OpenSearch is healthy",
			Checks:  map[string]healthuc.CheckResult{healthuc.CheckEngine: healthuc.CheckOK},
		}},
	}
	gql := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": nil})
	})
	a.handler = NewRouter(NewServer(a.docs, a.search, a.health), RouterConfig{APIKeys: apiKeys, GraphQL: gql})
	return a
}

func (a *testAPI) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func nikeDoc(t *testing.T) domdoc.Document {
	t.Helper()
	price, rating := 150.0, 4.5
	doc, err := domdoc.New("nike-270", domdoc.Attributes{
		Title: "Nike Air Max 270", Content: "Running shoe", Category: "shoes", Brand: "Nike",
		Tags: []string{"running"}, Price: &price, Rating: &rating,
	}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("nikeDoc: %v", err)
	}
	return doc
}
