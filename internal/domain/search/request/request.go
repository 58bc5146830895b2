package request

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/seekr/internal/domain"
	"github.com/kailas-cloud/seekr/internal/domain/search/tiebreak"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed free-text query length.
	MaxQueryLength  = 512
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxRating       = 5.0
	// MaxResultWindow caps offset+size, matching the engine's index.max_result_window.
	MaxResultWindow = 10000
)

// Limits bounds pagination and query length.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
	MaxQueryLength  int
	MaxResultWindow int
}

// DefaultLimits returns the built-in limits.
func DefaultLimits() Limits {
	return Limits{
		DefaultPageSize: DefaultPageSize,
		MaxPageSize:     MaxPageSize,
		MaxQueryLength:  MaxQueryLength,
		MaxResultWindow: MaxResultWindow,
	}
}

// Request is a normalized search specification.
type Request struct {
	query     string
	brand     string
	color     string
	size      string
	category  string
	condition string
	tags      []string
	minPrice  *float64
	maxPrice  *float64
	minRating *float64
	page      int
	pageSize  int
	tiebreak  tiebreak.Tiebreak
	limits    Limits
}

// Option configures a Request.
type Option func(*Request)

// WithQuery sets the free-text query.
func WithQuery(q string) Option { return func(r *Request) { r.query = q } }

// WithBrand filters by exact brand.
func WithBrand(b string) Option { return func(r *Request) { r.brand = b } }

// WithColor filters by exact color.
func WithColor(c string) Option { return func(r *Request) { r.color = c } }

// WithProductSize filters by exact product size label.
func WithProductSize(s string) Option { return func(r *Request) { r.size = s } }

// WithCategory filters by exact category.
func WithCategory(c string) Option { return func(r *Request) { r.category = c } }

// WithCondition filters by exact item condition.
func WithCondition(c string) Option { return func(r *Request) { r.condition = c } }

// WithTags matches documents carrying any of the tags.
func WithTags(tags ...string) Option {
	return func(r *Request) { r.tags = append(r.tags, tags...) }
}

// WithMinPrice sets the inclusive lower price bound.
func WithMinPrice(p float64) Option { return func(r *Request) { r.minPrice = &p } }

// WithMaxPrice sets the inclusive upper price bound.
func WithMaxPrice(p float64) Option { return func(r *Request) { r.maxPrice = &p } }

// WithMinRating sets the inclusive lower rating bound.
func WithMinRating(v float64) Option { return func(r *Request) { r.minRating = &v } }

// WithPage sets the 1-based page number.
func WithPage(p int) Option { return func(r *Request) { r.page = p } }

// WithPageSize sets the number of results per page.
func WithPageSize(n int) Option { return func(r *Request) { r.pageSize = n } }

// WithTiebreak sets the secondary ordering.
func WithTiebreak(t tiebreak.Tiebreak) Option { return func(r *Request) { r.tiebreak = t } }

// WithLimits overrides the pagination and query length limits.
func WithLimits(l Limits) Option { return func(r *Request) { r.limits = l } }

// New applies options, then defaults and clamps. Option order does not matter.
// Page is floored to 1; page size < 1 falls back to the default and is capped at the max.
func New(opts ...Option) Request {
	r := Request{limits: DefaultLimits()}
	for _, opt := range opts {
		opt(&r)
	}
	r.normalize()
	return r
}

func (r *Request) normalize() {
	def := DefaultLimits()
	if r.limits.DefaultPageSize <= 0 {
		r.limits.DefaultPageSize = def.DefaultPageSize
	}
	if r.limits.MaxPageSize <= 0 {
		r.limits.MaxPageSize = def.MaxPageSize
	}
	if r.limits.MaxQueryLength <= 0 {
		r.limits.MaxQueryLength = def.MaxQueryLength
	}
	if r.limits.MaxResultWindow <= 0 {
		r.limits.MaxResultWindow = def.MaxResultWindow
	}

	r.query = strings.TrimSpace(r.query)
	r.brand = strings.TrimSpace(r.brand)
	r.color = strings.TrimSpace(r.color)
	r.size = strings.TrimSpace(r.size)
	r.category = strings.TrimSpace(r.category)
	r.condition = strings.TrimSpace(r.condition)

	tags := r.tags[:0:0]
	for _, t := range r.tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		tags = nil
	}
	r.tags = tags

	if r.page < 1 {
		r.page = 1
	}
	if r.pageSize < 1 {
		r.pageSize = r.limits.DefaultPageSize
	}
	if r.pageSize > r.limits.MaxPageSize {
		r.pageSize = r.limits.MaxPageSize
	}
	if r.tiebreak == "" {
		r.tiebreak = tiebreak.Default
	}
}

// Validate checks the bounds that cannot be fixed by clamping.
func (r *Request) Validate() error {
	if n := utf8.RuneCountInString(r.query); n > r.limits.MaxQueryLength {
		return domain.NewValidation("query", fmt.Sprintf("too long (max %d chars)", r.limits.MaxQueryLength))
	}
	// page-1 > (window-size)/size is offset+size > window without overflowing
	if r.page-1 > (r.limits.MaxResultWindow-r.pageSize)/r.pageSize {
		return domain.NewValidation("page", fmt.Sprintf("page*size must not exceed %d", r.limits.MaxResultWindow))
	}
	if r.minPrice != nil && (math.IsNaN(*r.minPrice) || *r.minPrice < 0) {
		return domain.NewValidation("minPrice", "must not be negative")
	}
	if r.maxPrice != nil && (math.IsNaN(*r.maxPrice) || *r.maxPrice < 0) {
		return domain.NewValidation("maxPrice", "must not be negative")
	}
	if r.minPrice != nil && r.maxPrice != nil && *r.minPrice > *r.maxPrice {
		return domain.NewValidation("minPrice", "must not exceed maxPrice")
	}
	if r.minRating != nil && (math.IsNaN(*r.minRating) || *r.minRating < 0 || *r.minRating > MaxRating) {
		return domain.NewValidation("minRating", "must be between 0 and 5")
	}
	if !r.tiebreak.IsValid() {
		return domain.NewValidation("sort", fmt.Sprintf("unknown tiebreak %q", r.tiebreak))
	}
	return nil
}

// Query returns the trimmed free-text query; empty means no text clause.
func (r *Request) Query() string { return r.query }

// Brand returns the brand filter.
func (r *Request) Brand() string { return r.brand }

// Color returns the color filter.
func (r *Request) Color() string { return r.color }

// ProductSize returns the product size filter.
func (r *Request) ProductSize() string { return r.size }

// Category returns the category filter.
func (r *Request) Category() string { return r.category }

// Condition returns the condition filter.
func (r *Request) Condition() string { return r.condition }

// Tags returns the any-of tag filter.
func (r *Request) Tags() []string { return r.tags }

// MinPrice returns the lower price bound, or nil.
func (r *Request) MinPrice() *float64 { return r.minPrice }

// MaxPrice returns the upper price bound, or nil.
func (r *Request) MaxPrice() *float64 { return r.maxPrice }

// MinRating returns the lower rating bound, or nil.
func (r *Request) MinRating() *float64 { return r.minRating }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// PageSize returns the number of results per page.
func (r *Request) PageSize() int { return r.pageSize }

// Offset returns the number of hits to skip. Validate bounds it by the result window.
func (r *Request) Offset() int { return (r.page - 1) * r.pageSize }

// Tiebreak returns the secondary ordering.
func (r *Request) Tiebreak() tiebreak.Tiebreak { return r.tiebreak }
