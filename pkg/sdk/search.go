package seekr

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/domain/search/result"
	"github.com/kailas-cloud/seekr/internal/domain/search/tiebreak"
)

// SearchService runs queries, listings, suggestions and recommendations.
type SearchService struct {
	svc searchUseCase
	obs *observer
}

// Query runs a filtered full-text search with typo tolerance.
func (s *SearchService) Query(ctx context.Context, q Query) (_ Page, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.query", start, err) }()

	res, err := s.svc.Search(ctx, queryOptions(q)...)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}
	return fromResult(&res), nil
}

// ByCategory lists products of one category, most popular first.
func (s *SearchService) ByCategory(ctx context.Context, category string, page, pageSize int) (_ Page, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.by_category", start, err) }()

	res, err := s.svc.ByCategory(ctx, category, page, pageSize)
	if err != nil {
		return Page{}, fmt.Errorf("search by category: %w", err)
	}
	return fromResult(&res), nil
}

// ByTags lists products carrying any of the tags.
func (s *SearchService) ByTags(ctx context.Context, tags []string, page, pageSize int) (_ Page, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.by_tags", start, err) }()

	res, err := s.svc.ByTags(ctx, tags, page, pageSize)
	if err != nil {
		return Page{}, fmt.Errorf("search by tags: %w", err)
	}
	return fromResult(&res), nil
}

// Suggest completes a title prefix.
func (s *SearchService) Suggest(ctx context.Context, prefix string) (_ []string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.suggest", start, err) }()

	out, err := s.svc.Suggest(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return out, nil
}

// Similar returns products resembling the given one, excluding it.
// A non-positive limit uses the configured default.
func (s *SearchService) Similar(ctx context.Context, id string, limit int) (_ []Product, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.similar", start, err) }()

	docs, err := s.svc.Recommend(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("similar to %s: %w", id, err)
	}
	return fromInternalDocuments(docs), nil
}

// ForUser returns products matching the user's interaction profile,
// or the most popular ones when no profile exists.
func (s *SearchService) ForUser(ctx context.Context, userID string, limit int) (_ []Product, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.for_user", start, err) }()

	docs, err := s.svc.RecommendForUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recommend for user: %w", err)
	}
	return fromInternalDocuments(docs), nil
}

// Categories lists distinct categories. Failures yield an empty list.
func (s *SearchService) Categories(ctx context.Context) []string {
	return s.svc.Categories(ctx)
}

// Tags lists distinct tags. Failures yield an empty list.
func (s *SearchService) Tags(ctx context.Context) []string {
	return s.svc.Tags(ctx)
}

func queryOptions(q Query) []request.Option {
	opts := []request.Option{
		request.WithQuery(q.Text),
		request.WithBrand(q.Brand),
		request.WithColor(q.Color),
		request.WithProductSize(q.Size),
		request.WithCategory(q.Category),
		request.WithCondition(q.Condition),
	}
	if len(q.Tags) > 0 {
		opts = append(opts, request.WithTags(q.Tags...))
	}
	if q.MinPrice != nil {
		opts = append(opts, request.WithMinPrice(*q.MinPrice))
	}
	if q.MaxPrice != nil {
		opts = append(opts, request.WithMaxPrice(*q.MaxPrice))
	}
	if q.MinRating != nil {
		opts = append(opts, request.WithMinRating(*q.MinRating))
	}
	if q.Page > 0 {
		opts = append(opts, request.WithPage(q.Page))
	}
	if q.PageSize > 0 {
		opts = append(opts, request.WithPageSize(q.PageSize))
	}
	if q.Sort != "" {
		opts = append(opts, request.WithTiebreak(tiebreak.Tiebreak(q.Sort)))
	}
	return opts
}

func fromResult(r *result.Result) Page {
	return Page{
		Products: fromInternalDocuments(r.Documents()),
		Total:    r.Total(),
		Took:     time.Duration(r.Took()) * time.Millisecond,
		Page:     r.Page(),
		PageSize: r.Size(),
		HasMore:  r.HasMore(),
	}
}
