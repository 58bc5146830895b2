package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kailas-cloud/seekr/internal/db"
	"github.com/kailas-cloud/seekr/internal/db/query"
	"github.com/kailas-cloud/seekr/internal/domain"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
	"github.com/kailas-cloud/seekr/internal/domain/search/request"
)

func TestSearch_HappyPath(t *testing.T) {
	repo, me := newTestRepo(t)
	me.executeFn = func(context.Context, *query.Request) (*db.SearchResult, error) {
		return &db.SearchResult{
			Took:  12,
			Total: 41,
			Hits:  []db.Hit{hit(t, "nike", map[string]any{"title": "Nike Air Max 270", "price": 150})},
		}, nil
	}

	req := request.New(request.WithQuery("nike"), request.WithPage(2), request.WithPageSize(5))
	res, err := repo.Search(context.Background(), &req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total() != 41 || res.Took() != 12 || res.Page() != 2 || res.Size() != 5 {
		t.Errorf("unexpected result total=%d took=%d page=%d size=%d", res.Total(), res.Took(), res.Page(), res.Size())
	}
	if len(res.Documents()) != 1 || res.Documents()[0].Title() != "Nike Air Max 270" {
		t.Errorf("documents = %v", res.Documents())
	}
	if me.last.From != 5 {
		t.Errorf("from = %d, want 5", me.last.From)
	}
}

func TestSearch_Error(t *testing.T) {
	repo, me := newTestRepo(t)
	me.executeFn = func(context.Context, *query.Request) (*db.SearchResult, error) {
		return nil, fmt.Errorf("search: %w", domain.ErrEngineUnavailable)
	}

	req := request.New()
	if _, err := repo.Search(context.Background(), &req); !errors.Is(err, domain.ErrEngineUnavailable) {
		t.Fatalf("expected ErrEngineUnavailable, got %v", err)
	}
}

func TestSuggest(t *testing.T) {
	repo, me := newTestRepo(t)
	me.executeFn = func(_ context.Context, req *query.Request) (*db.SearchResult, error) {
		if req.Suggest == nil || req.Suggest.Prefix != "ni" {
			t.Errorf("unexpected suggest request %+v", req.Suggest)
		}
		return &db.SearchResult{Suggestions: []string{"Nike Air", "nike air", "Nike Cap"}}, nil
	}

	got, err := repo.Suggest(context.Background(), "ni", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "Nike Air" || got[1] != "Nike Cap" {
		t.Errorf("Suggest() = %v", got)
	}
}

func TestSimilar_ExcludesSelfAndCaps(t *testing.T) {
	repo, me := newTestRepo(t)
	me.executeFn = func(context.Context, *query.Request) (*db.SearchResult, error) {
		return &db.SearchResult{Hits: []db.Hit{
			hit(t, "self", map[string]any{"title": "Self"}),
			hit(t, "a", map[string]any{"title": "A"}),
			hit(t, "b", map[string]any{"title": "B"}),
			hit(t, "c", map[string]any{"title": "C"}),
		}}, nil
	}

	doc := testDoc(t, "self", domdoc.Attributes{Title: "Self"})
	got, err := repo.Similar(context.Background(), &doc, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID() != "a" || got[1].ID() != "b" {
		t.Errorf("Similar() = %v", got)
	}
}

func TestForProfileAndPopular(t *testing.T) {
	repo, me := newTestRepo(t)
	me.executeFn = func(context.Context, *query.Request) (*db.SearchResult, error) {
		return &db.SearchResult{Hits: []db.Hit{hit(t, "a", map[string]any{"title": "A"})}}, nil
	}

	docs, err := repo.ForProfile(context.Background(), interaction.Profile{Brands: []string{"Nike"}}, 3)
	if err != nil || len(docs) != 1 {
		t.Fatalf("ForProfile() = %v, %v", docs, err)
	}
	if me.last.Size != 3 {
		t.Errorf("size = %d", me.last.Size)
	}

	docs, err = repo.Popular(context.Background(), 4)
	if err != nil || len(docs) != 1 {
		t.Fatalf("Popular() = %v, %v", docs, err)
	}
	if me.last.Size != 4 {
		t.Errorf("size = %d", me.last.Size)
	}
}

func TestCategoriesAndTags(t *testing.T) {
	repo, me := newTestRepo(t)
	me.executeFn = func(_ context.Context, req *query.Request) (*db.SearchResult, error) {
		if req.Size != 1000 {
			t.Errorf("fetch size = %d, want 1000", req.Size)
		}
		return &db.SearchResult{Hits: []db.Hit{
			hit(t, "a", map[string]any{"title": "A", "category": "shoes", "tags": []string{"sale"}}),
			hit(t, "b", map[string]any{"title": "B", "category": "apparel", "tags": []string{"new", "sale"}}),
		}}, nil
	}

	got, err := repo.Categories(context.Background(), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "apparel" {
		t.Errorf("Categories() = %v", got)
	}

	got, err = repo.Tags(context.Background(), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "new" || got[1] != "sale" {
		t.Errorf("Tags() = %v", got)
	}
}

func TestByCategoryAndTags(t *testing.T) {
	repo, me := newTestRepo(t)

	res, err := repo.ByCategory(context.Background(), "shoes", request.WithPage(2), request.WithPageSize(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Page() != 2 || me.last.From != 10 {
		t.Errorf("page = %d, from = %d", res.Page(), me.last.From)
	}
	must := clauses(boolOf(t, decode(t, me.last)), "must")
	if len(must) != 1 || must[0].(map[string]any)["term"].(map[string]any)["category"] != "shoes" {
		t.Errorf("by category must = %v", must)
	}

	if _, err := repo.ByTags(context.Background(), []string{"a", "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	must = clauses(boolOf(t, decode(t, me.last)), "must")
	if len(must) != 1 {
		t.Fatalf("by tags must = %v", must)
	}
	if _, ok := must[0].(map[string]any)["terms"]; !ok {
		t.Errorf("by tags must = %v", must)
	}
}
