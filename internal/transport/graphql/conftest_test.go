package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/kailas-cloud/seekr/internal/domain"
	dombatch "github.com/kailas-cloud/seekr/internal/domain/batch"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/document/patch"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/domain/search/result"
	documentuc "github.com/kailas-cloud/seekr/internal/usecase/document"
	healthuc "github.com/kailas-cloud/seekr/internal/usecase/health"
)

// --- Fakes ---

type fakeDocuments struct {
	createFn func(ctx context.Context, in documentuc.CreateInput) (domdoc.Document, error)
	updateFn func(ctx context.Context, id string, f patch.Fields) (domdoc.Document, error)
	deleteFn func(ctx context.Context, id string) error
	getFn    func(ctx context.Context, id string) (domdoc.Document, error)
	bulkFn   func(ctx context.Context, inputs []documentuc.CreateInput) []dombatch.Result
}

func (f *fakeDocuments) Create(ctx context.Context, in documentuc.CreateInput) (domdoc.Document, error) {
	if f.createFn != nil {
		return f.createFn(ctx, in)
	}
	return domdoc.New(in.ID, in.Attributes, testNow)
}

func (f *fakeDocuments) Update(ctx context.Context, id string, p patch.Fields) (domdoc.Document, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, p)
	}
	return domdoc.Document{}, fmt.Errorf("update %s: %w", id, domain.ErrNotFound)
}

func (f *fakeDocuments) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeDocuments) Get(ctx context.Context, id string) (domdoc.Document, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return domdoc.Document{}, fmt.Errorf("get %s: %w", id, domain.ErrNotFound)
}

func (f *fakeDocuments) BulkCreate(ctx context.Context, inputs []documentuc.CreateInput) []dombatch.Result {
	if f.bulkFn != nil {
		return f.bulkFn(ctx, inputs)
	}
	out := make([]dombatch.Result, len(inputs))
	for i, in := range inputs {
		out[i] = dombatch.NewOK(i, in.ID)
	}
	return out
}

type fakeSearch struct {
	searchFn     func(ctx context.Context, opts ...request.Option) (result.Result, error)
	byCategoryFn func(ctx context.Context, category string, page, size int) (result.Result, error)
	byTagsFn     func(ctx context.Context, tags []string, page, size int) (result.Result, error)
	suggestFn    func(ctx context.Context, prefix string) ([]string, error)
	recommendFn  func(ctx context.Context, id string, limit int) ([]domdoc.Document, error)
	forUserFn    func(ctx context.Context, userID string, limit int) ([]domdoc.Document, error)
	categories   []string
	tags         []string
}

func (f *fakeSearch) Search(ctx context.Context, opts ...request.Option) (result.Result, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, opts...)
	}
	req := request.New(opts...)
	return result.New(nil, 0, 0, req.Page(), req.PageSize()), nil
}

func (f *fakeSearch) ByCategory(ctx context.Context, category string, page, size int) (result.Result, error) {
	if f.byCategoryFn != nil {
		return f.byCategoryFn(ctx, category, page, size)
	}
	return result.New(nil, 0, 0, 1, 20), nil
}

func (f *fakeSearch) ByTags(ctx context.Context, tags []string, page, size int) (result.Result, error) {
	if f.byTagsFn != nil {
		return f.byTagsFn(ctx, tags, page, size)
	}
	return result.New(nil, 0, 0, 1, 20), nil
}

func (f *fakeSearch) Suggest(ctx context.Context, prefix string) ([]string, error) {
	if f.suggestFn != nil {
		return f.suggestFn(ctx, prefix)
	}
	return nil, nil
}

func (f *fakeSearch) Recommend(ctx context.Context, id string, limit int) ([]domdoc.Document, error) {
	if f.recommendFn != nil {
		return f.recommendFn(ctx, id, limit)
	}
	return nil, nil
}

func (f *fakeSearch) RecommendForUser(ctx context.Context, userID string, limit int) ([]domdoc.Document, error) {
	if f.forUserFn != nil {
		return f.forUserFn(ctx, userID, limit)
	}
	return nil, nil
}

func (f *fakeSearch) Categories(context.Context) []string { return f.categories }

func (f *fakeSearch) Tags(context.Context) []string { return f.tags }

type fakeInteractions struct {
	recordFn func(ctx context.Context, userID, docID string, kind interaction.Kind) (domdoc.Document, error)
	resetFn  func(ctx context.Context, userID string) error
}

func (f *fakeInteractions) Record(
	ctx context.Context, userID, docID string, kind interaction.Kind,
) (domdoc.Document, error) {
	if f.recordFn != nil {
		return f.recordFn(ctx, userID, docID, kind)
	}
	return domdoc.Document{}, fmt.Errorf("record %s: %w", docID, domain.ErrNotFound)
}

func (f *fakeInteractions) Reset(ctx context.Context, userID string) error {
	if f.resetFn != nil {
		return f.resetFn(ctx, userID)
	}
	return domain.ErrProfilesDisabled
}

type fakeHealth struct {
	report healthuc.Report
}

func (f *fakeHealth) Check(context.Context) healthuc.Report { return f.report }

// --- Helpers ---

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type testAPI struct {
	docs         *fakeDocuments
	search       *fakeSearch
	interactions *fakeInteractions
	health       *fakeHealth
	schema       graphql.Schema
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	a := &testAPI{
		docs:         &fakeDocuments{},
		search:       &fakeSearch{},
		interactions: &fakeInteractions{},
		health: &fakeHealth{report: healthuc.Report{
			Status:  healthuc.Healthy,
			Message: "OpenSearch is healthy",
			Checks:  map[string]healthuc.CheckResult{healthuc.CheckEngine: healthuc.CheckOK},
		}},
	}
	schema, err := NewSchema(Services{
		Documents:    a.docs,
		Search:       a.search,
		Interactions: a.interactions,
		Health:       a.health,
	})
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	a.schema = schema
	return a
}

// do runs query and decodes data into T. Errors are returned as messages.
func do[T any](t *testing.T, a *testAPI, query string, vars map[string]any) (T, []string) {
	t.Helper()
	res := graphql.Do(graphql.Params{
		Schema:         a.schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        context.Background(),
	})
	var errs []string
	for _, e := range res.Errors {
		errs = append(errs, e.Message)
	}

	var out T
	raw, err := json.Marshal(res.Data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal data %s: %v", raw, err)
	}
	return out, errs
}

func mustNoErrors(t *testing.T, errs []string) {
	t.Helper()
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func nikeDoc(t *testing.T) domdoc.Document {
	t.Helper()
	price, rating := 150.0, 4.5
	doc, err := domdoc.New("nike-270", domdoc.Attributes{
		Title: "Nike Air Max 270", Content: "Running shoe", Category: "shoes", Brand: "Nike",
		Tags: []string{"running", "sale"}, Price: &price, Rating: &rating, Popularity: 90,
	}, testNow)
	if err != nil {
		t.Fatalf("nikeDoc: %v", err)
	}
	return doc
}

type gqlDocument struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Brand           *string  `json:"brand"`
	Tags            []string `json:"tags"`
	Price           *float64 `json:"price"`
	PopularityScore float64  `json:"popularityScore"`
	Views           int      `json:"views"`
	CreatedAt       string   `json:"createdAt"`
	LastInteraction *string  `json:"lastInteraction"`
	FormattedPrice  string   `json:"formattedPrice"`
	FormattedRating string   `json:"formattedRating"`
	Excerpt         string   `json:"excerpt"`
}

type gqlDocumentResponse struct {
	Success  bool         `json:"success"`
	Message  *string      `json:"message"`
	Document *gqlDocument `json:"document"`
}
