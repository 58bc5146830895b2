package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/seekr/internal/domain"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/domain/search/result"
	"github.com/kailas-cloud/seekr/internal/logger"
)

// Listing defaults.
const (
	DefaultSuggestSize           = 5
	DefaultRecommendLimit        = 5
	DefaultAggregationFetchLimit = 1000
	DefaultProfileDepth          = 3
)

// Service handles search, suggestions, recommendations and facet listings.
type Service struct {
	search   Searcher
	docs     DocumentReader
	profiles ProfileReader

	limits         request.Limits
	suggestSize    int
	recommendLimit int
	fetchLimit     int
	profileDepth   int
}

// New creates a search service without user profiles.
func New(search Searcher, docs DocumentReader) *Service {
	return &Service{
		search:         search,
		docs:           docs,
		limits:         request.DefaultLimits(),
		suggestSize:    DefaultSuggestSize,
		recommendLimit: DefaultRecommendLimit,
		fetchLimit:     DefaultAggregationFetchLimit,
		profileDepth:   DefaultProfileDepth,
	}
}

// WithProfiles enables profile-based recommendations.
func (s *Service) WithProfiles(p ProfileReader) *Service {
	s.profiles = p
	return s
}

// WithLimits configures paging and query length limits.
func (s *Service) WithLimits(l request.Limits) *Service {
	s.limits = l
	return s
}

// WithSuggestSize configures how many completions Suggest returns.
func (s *Service) WithSuggestSize(n int) *Service {
	if n > 0 {
		s.suggestSize = n
	}
	return s
}

// WithRecommendLimit configures the default recommendation count.
func (s *Service) WithRecommendLimit(n int) *Service {
	if n > 0 {
		s.recommendLimit = n
	}
	return s
}

// WithAggregationFetchLimit bounds how many documents the facet listings scan.
func (s *Service) WithAggregationFetchLimit(n int) *Service {
	if n > 0 {
		s.fetchLimit = n
	}
	return s
}

// WithProfileDepth configures how many affinities per dimension drive recommendations.
func (s *Service) WithProfileDepth(n int) *Service {
	if n > 0 {
		s.profileDepth = n
	}
	return s
}

// Search runs a filtered full-text search.
func (s *Service) Search(ctx context.Context, opts ...request.Option) (result.Result, error) {
	req := request.New(s.withLimits(opts)...)
	if err := req.Validate(); err != nil {
		logFailure(ctx, "search", "", err)
		return result.Result{}, err
	}
	res, err := s.search.Search(ctx, &req)
	if err != nil {
		err = fmt.Errorf("search: %w", err)
		logFailure(ctx, "search", "", err)
		return result.Result{}, err
	}
	return res, nil
}

// ByCategory pages through the documents of one category.
func (s *Service) ByCategory(ctx context.Context, category string, page, size int) (result.Result, error) {
	if strings.TrimSpace(category) == "" {
		return result.Result{}, domain.NewValidation("category", "must not be blank")
	}
	if err := s.validatePaging(page, size); err != nil {
		return result.Result{}, err
	}
	res, err := s.search.ByCategory(ctx, category, s.paging(page, size)...)
	if err != nil {
		err = fmt.Errorf("search by category: %w", err)
		logFailure(ctx, "search_by_category", category, err)
		return result.Result{}, err
	}
	return res, nil
}

// ByTags pages through the documents carrying any of tags.
func (s *Service) ByTags(ctx context.Context, tags []string, page, size int) (result.Result, error) {
	if len(tags) == 0 {
		return result.Result{}, domain.NewValidation("tags", "at least one tag is required")
	}
	if err := domdoc.ValidateTags(tags); err != nil {
		return result.Result{}, err
	}
	if err := s.validatePaging(page, size); err != nil {
		return result.Result{}, err
	}
	res, err := s.search.ByTags(ctx, tags, s.paging(page, size)...)
	if err != nil {
		err = fmt.Errorf("search by tags: %w", err)
		logFailure(ctx, "search_by_tags", strings.Join(tags, ","), err)
		return result.Result{}, err
	}
	return res, nil
}

// Suggest returns title completions for prefix. A blank prefix yields an empty list.
func (s *Service) Suggest(ctx context.Context, prefix string) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []string{}, nil
	}
	if utf8.RuneCountInString(prefix) > s.limits.MaxQueryLength {
		return nil, domain.NewValidation("prefix", fmt.Sprintf("too long (max %d chars)", s.limits.MaxQueryLength))
	}
	out, err := s.search.Suggest(ctx, prefix, s.suggestSize)
	if err != nil {
		err = fmt.Errorf("suggest: %w", err)
		logFailure(ctx, "suggest", "", err)
		return nil, err
	}
	return out, nil
}

// Recommend returns documents similar to the document id, never the document itself.
// limit <= 0 selects the configured default.
func (s *Service) Recommend(ctx context.Context, id string, limit int) ([]domdoc.Document, error) {
	doc, err := s.docs.Get(ctx, id)
	if err != nil {
		err = fmt.Errorf("get source document: %w", err)
		logFailure(ctx, "recommend", id, err)
		return nil, err
	}
	docs, err := s.search.Similar(ctx, &doc, s.recommendSize(limit))
	if err != nil {
		err = fmt.Errorf("similar documents: %w", err)
		logFailure(ctx, "recommend", id, err)
		return nil, err
	}
	return docs, nil
}

// RecommendForUser returns documents matching the user's interaction profile.
// Popular documents are returned when profiles are disabled, unreadable or empty.
func (s *Service) RecommendForUser(ctx context.Context, userID string, limit int) ([]domdoc.Document, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.NewValidation("userId", "must not be blank")
	}
	size := s.recommendSize(limit)
	l := logger.ForOp(ctx, "recommend_for_user", userID)

	if s.profiles != nil {
		p, err := s.profiles.Profile(ctx, userID, s.profileDepth)
		switch {
		case err != nil:
			l.Warn("profile unavailable, falling back to popular", zap.Error(err))
		case !p.IsEmpty():
			docs, err := s.search.ForProfile(ctx, p, size)
			if err != nil {
				err = fmt.Errorf("profile recommendations: %w", err)
				logFailure(ctx, "recommend_for_user", userID, err)
				return nil, err
			}
			if len(docs) > 0 {
				return docs, nil
			}
		}
	}

	docs, err := s.search.Popular(ctx, size)
	if err != nil {
		err = fmt.Errorf("popular documents: %w", err)
		logFailure(ctx, "recommend_for_user", userID, err)
		return nil, err
	}
	return docs, nil
}

// Categories lists distinct categories. Engine failures degrade to an empty list.
func (s *Service) Categories(ctx context.Context) []string {
	out, err := s.search.Categories(ctx, s.fetchLimit)
	if err != nil {
		logger.ForOp(ctx, "get_categories", "").Error("listing categories failed", zap.Error(err))
		return []string{}
	}
	return out
}

// Tags lists distinct tags. Engine failures degrade to an empty list.
func (s *Service) Tags(ctx context.Context) []string {
	out, err := s.search.Tags(ctx, s.fetchLimit)
	if err != nil {
		logger.ForOp(ctx, "get_tags", "").Error("listing tags failed", zap.Error(err))
		return []string{}
	}
	return out
}

func (s *Service) withLimits(opts []request.Option) []request.Option {
	return append(opts[:len(opts):len(opts)], request.WithLimits(s.limits))
}

func (s *Service) paging(page, size int) []request.Option {
	return []request.Option{request.WithPage(page), request.WithPageSize(size), request.WithLimits(s.limits)}
}

func (s *Service) validatePaging(page, size int) error {
	req := request.New(s.paging(page, size)...)
	return req.Validate()
}

func (s *Service) recommendSize(limit int) int {
	if limit <= 0 {
		return s.recommendLimit
	}
	return min(limit, s.limits.MaxPageSize)
}

func logFailure(ctx context.Context, op, id string, err error) {
	l := logger.ForOp(ctx, op, id)
	if domain.IsClientError(err) {
		l.Info("request rejected", zap.Error(err))
		return
	}
	l.Error("operation failed", zap.Error(err))
}
