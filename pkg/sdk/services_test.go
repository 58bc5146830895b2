package seekr

import (
	"context"
	"errors"
	"testing"
	"time"

	dombatch "github.com/kailas-cloud/seekr/internal/domain/batch"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/document/patch"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/domain/search/result"
	"github.com/kailas-cloud/seekr/internal/domain/search/tiebreak"
	documentuc "github.com/kailas-cloud/seekr/internal/usecase/document"
	healthuc "github.com/kailas-cloud/seekr/internal/usecase/health"
)

var testTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func testDoc(id, title string) domdoc.Document {
	return domdoc.Reconstruct(id, domdoc.Attributes{
		Title: title,
		Brand: "Nike",
		Price: ptr(150.0),
	}, domdoc.Counters{Likes: 2}, testTime, testTime, nil)
}

// --- ProductService ---

func TestProductService_Create(t *testing.T) {
	mock := &mockDocumentUC{
		createFn: func(_ context.Context, in documentuc.CreateInput) (domdoc.Document, error) {
			if in.ID != "nike-270" || in.Attributes.Title != "Nike Air Max 270" {
				t.Errorf("input = %+v", in)
			}
			if in.Attributes.Price == nil || *in.Attributes.Price != 150 {
				t.Errorf("price = %v, want 150", in.Attributes.Price)
			}
			return testDoc(in.ID, in.Attributes.Title), nil
		},
	}

	svc := &ProductService{svc: mock}
	p, err := svc.Create(context.Background(), NewProduct{
		ID:    "nike-270",
		Title: "Nike Air Max 270",
		Price: ptr(150.0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "nike-270" || p.Likes != 2 {
		t.Errorf("product = %+v", p)
	}
	if p.FormattedPrice != "$150.00" {
		t.Errorf("FormattedPrice = %q, want $150.00", p.FormattedPrice)
	}
	if !p.CreatedAt.Equal(testTime) {
		t.Errorf("CreatedAt = %v", p.CreatedAt)
	}
}

func TestProductService_Create_ValidationError(t *testing.T) {
	mock := &mockDocumentUC{
		createFn: func(context.Context, documentuc.CreateInput) (domdoc.Document, error) {
			return domdoc.Document{}, ErrValidation
		},
	}

	svc := &ProductService{svc: mock}
	_, err := svc.Create(context.Background(), NewProduct{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestProductService_Get_NotFound(t *testing.T) {
	mock := &mockDocumentUC{
		getFn: func(context.Context, string) (domdoc.Document, error) {
			return domdoc.Document{}, ErrNotFound
		},
	}

	svc := &ProductService{svc: mock}
	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductService_Update(t *testing.T) {
	mock := &mockDocumentUC{
		updateFn: func(_ context.Context, id string, f patch.Fields) (domdoc.Document, error) {
			if f.Title == nil || *f.Title != "Renamed" {
				t.Errorf("title = %v, want Renamed", f.Title)
			}
			if f.Brand != nil {
				t.Errorf("brand must stay unset, got %q", *f.Brand)
			}
			return testDoc(id, *f.Title), nil
		},
	}

	svc := &ProductService{svc: mock}
	p, err := svc.Update(context.Background(), "nike-270", ProductPatch{Title: ptr("Renamed")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "Renamed" {
		t.Errorf("Title = %q, want Renamed", p.Title)
	}
}

func TestProductService_Delete(t *testing.T) {
	var got string
	mock := &mockDocumentUC{
		deleteFn: func(_ context.Context, id string) error {
			got = id
			return nil
		},
	}

	svc := &ProductService{svc: mock}
	if err := svc.Delete(context.Background(), "nike-270"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "nike-270" {
		t.Errorf("deleted %q, want nike-270", got)
	}
}

func TestProductService_BulkCreate(t *testing.T) {
	mock := &mockDocumentUC{
		bulkFn: func(_ context.Context, inputs []documentuc.CreateInput) []dombatch.Result {
			if len(inputs) != 2 {
				t.Fatalf("inputs = %d, want 2", len(inputs))
			}
			return []dombatch.Result{
				dombatch.NewOK(0, "a"),
				dombatch.NewError(1, "", ErrValidation),
			}
		},
	}

	svc := &ProductService{svc: mock}
	res := svc.BulkCreate(context.Background(), []NewProduct{{Title: "A"}, {}})
	if len(res) != 2 {
		t.Fatalf("results = %d, want 2", len(res))
	}
	if !res[0].OK || res[0].ID != "a" {
		t.Errorf("first = %+v", res[0])
	}
	if res[1].OK || !errors.Is(res[1].Err, ErrValidation) || res[1].Index != 1 {
		t.Errorf("second = %+v", res[1])
	}
}

// --- SearchService ---

func TestSearchService_Query(t *testing.T) {
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, opts ...request.Option) (result.Result, error) {
			req := request.New(opts...)
			if req.Query() != "nike" || req.Brand() != "Nike" || req.ProductSize() != "42" {
				t.Errorf("request = %+v", req)
			}
			if req.MinPrice() == nil || *req.MinPrice() != 100 {
				t.Errorf("minPrice = %v, want 100", req.MinPrice())
			}
			if req.MaxPrice() != nil {
				t.Errorf("maxPrice must be unset")
			}
			if req.Tiebreak() != tiebreak.Recency {
				t.Errorf("tiebreak = %q, want recency", req.Tiebreak())
			}
			if req.Page() != 2 || req.PageSize() != 1 {
				t.Errorf("paging = %d/%d, want 2/1", req.Page(), req.PageSize())
			}
			return result.New([]domdoc.Document{testDoc("a", "Nike")}, 3, 7, 2, 1), nil
		},
	}

	svc := &SearchService{svc: mock}
	page, err := svc.Query(context.Background(), Query{
		Text:     "nike",
		Brand:    "Nike",
		Size:     "42",
		MinPrice: ptr(100.0),
		Page:     2,
		PageSize: 1,
		Sort:     SortRecency,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 3 || len(page.Products) != 1 || !page.HasMore {
		t.Errorf("page = %+v", page)
	}
	if page.Took != 7*time.Millisecond {
		t.Errorf("Took = %v, want 7ms", page.Took)
	}
}

func TestSearchService_Query_Error(t *testing.T) {
	mock := &mockSearchUC{
		searchFn: func(context.Context, ...request.Option) (result.Result, error) {
			return result.Result{}, ErrEngineUnavailable
		},
	}

	svc := &SearchService{svc: mock}
	if _, err := svc.Query(context.Background(), Query{Text: "x"}); !errors.Is(err, ErrEngineUnavailable) {
		t.Fatalf("expected ErrEngineUnavailable, got %v", err)
	}
}

func TestSearchService_Listings(t *testing.T) {
	mock := &mockSearchUC{
		byCategoryFn: func(_ context.Context, category string, page, size int) (result.Result, error) {
			if category != "shoes" || page != 1 || size != 10 {
				t.Errorf("args = %q %d %d", category, page, size)
			}
			return result.New([]domdoc.Document{testDoc("a", "A")}, 1, 1, 1, 10), nil
		},
		byTagsFn: func(_ context.Context, tags []string, _, _ int) (result.Result, error) {
			if len(tags) != 2 {
				t.Errorf("tags = %v", tags)
			}
			return result.New(nil, 0, 1, 1, 20), nil
		},
		categories: []string{"apparel", "shoes"},
		tags:       []string{"running"},
	}

	svc := &SearchService{svc: mock}
	page, err := svc.ByCategory(context.Background(), "shoes", 1, 10)
	if err != nil || page.Total != 1 {
		t.Fatalf("ByCategory = %+v, %v", page, err)
	}
	page, err = svc.ByTags(context.Background(), []string{"running", "sport"}, 0, 0)
	if err != nil || len(page.Products) != 0 {
		t.Fatalf("ByTags = %+v, %v", page, err)
	}
	if got := svc.Categories(context.Background()); len(got) != 2 {
		t.Errorf("Categories = %v", got)
	}
	if got := svc.Tags(context.Background()); len(got) != 1 {
		t.Errorf("Tags = %v", got)
	}
}

func TestSearchService_Suggest(t *testing.T) {
	mock := &mockSearchUC{
		suggestFn: func(_ context.Context, prefix string) ([]string, error) {
			return []string{"Nike Air Max 270"}, nil
		},
	}

	svc := &SearchService{svc: mock}
	out, err := svc.Suggest(context.Background(), "nik")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0] != "Nike Air Max 270" {
		t.Errorf("suggestions = %v", out)
	}
}

func TestSearchService_Recommendations(t *testing.T) {
	mock := &mockSearchUC{
		recommendFn: func(_ context.Context, id string, limit int) ([]domdoc.Document, error) {
			if id != "a" || limit != 3 {
				t.Errorf("args = %q %d", id, limit)
			}
			return []domdoc.Document{testDoc("b", "B")}, nil
		},
		forUserFn: func(_ context.Context, userID string, _ int) ([]domdoc.Document, error) {
			if userID == "broken" {
				return nil, ErrEngineUnavailable
			}
			return []domdoc.Document{testDoc("c", "C"), testDoc("d", "D")}, nil
		},
	}

	svc := &SearchService{svc: mock}
	similar, err := svc.Similar(context.Background(), "a", 3)
	if err != nil || len(similar) != 1 || similar[0].ID != "b" {
		t.Fatalf("Similar = %+v, %v", similar, err)
	}
	forUser, err := svc.ForUser(context.Background(), "u1", 0)
	if err != nil || len(forUser) != 2 {
		t.Fatalf("ForUser = %+v, %v", forUser, err)
	}
	if _, err := svc.ForUser(context.Background(), "broken", 0); !errors.Is(err, ErrEngineUnavailable) {
		t.Fatalf("expected ErrEngineUnavailable, got %v", err)
	}
}

// --- InteractionService ---

func TestInteractionService_Record(t *testing.T) {
	mock := &mockInteractionUC{
		recordFn: func(_ context.Context, userID, docID string, kind interaction.Kind) (domdoc.Document, error) {
			if userID != "u1" || docID != "a" || kind != interaction.Like {
				t.Errorf("args = %q %q %q", userID, docID, kind)
			}
			return testDoc(docID, "A"), nil
		},
	}

	svc := &InteractionService{svc: mock}
	p, err := svc.Record(context.Background(), "u1", "a", Like)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "a" {
		t.Errorf("ID = %q, want a", p.ID)
	}
}

func TestInteractionService_Record_UnknownKind(t *testing.T) {
	mock := &mockInteractionUC{
		recordFn: func(context.Context, string, string, interaction.Kind) (domdoc.Document, error) {
			t.Fatal("use case must not be called")
			return domdoc.Document{}, nil
		},
	}

	svc := &InteractionService{svc: mock}
	if _, err := svc.Record(context.Background(), "u1", "a", InteractionKind("share")); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestInteractionService_Reset_ProfilesDisabled(t *testing.T) {
	mock := &mockInteractionUC{
		resetFn: func(context.Context, string) error { return ErrProfilesDisabled },
	}

	svc := &InteractionService{svc: mock}
	if err := svc.Reset(context.Background(), "u1"); !errors.Is(err, ErrProfilesDisabled) {
		t.Fatalf("expected ErrProfilesDisabled, got %v", err)
	}
}

// --- Health ---

func TestClient_Health(t *testing.T) {
	c := &Client{healthSvc: &mockHealthUC{report: healthuc.Report{
		Status:  healthuc.Degraded,
		Message: "Redis is not responding",
		Checks: map[string]healthuc.CheckResult{
			healthuc.CheckEngine: healthuc.CheckOK,
			healthuc.CheckRedis:  healthuc.CheckError,
		},
	}}}

	h := c.Health(context.Background())
	if h.Status != "degraded" || h.Message != "Redis is not responding" {
		t.Errorf("health = %+v", h)
	}
	if h.Checks["engine"] != "ok" || h.Checks["redis"] != "error" {
		t.Errorf("checks = %v", h.Checks)
	}
}
