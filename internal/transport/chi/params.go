package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/domain/search/tiebreak"
)

// SearchParams defines parameters for GET /api/v1/search.
type SearchParams struct {
	Q           *string   `form:"q"`
	Brand       *string   `form:"brand"`
	Color       *string   `form:"color"`
	ProductSize *string   `form:"product_size"`
	Category    *string   `form:"category"`
	Condition   *string   `form:"condition"`
	Tags        *[]string `form:"tags"`
	MinPrice    *float64  `form:"min_price"`
	MaxPrice    *float64  `form:"max_price"`
	MinRating   *float64  `form:"min_rating"`
	Page        *int      `form:"page"`
	Size        *int      `form:"size"`
	Sort        *string   `form:"sort"`
}

// SuggestParams defines parameters for GET /api/v1/suggest.
type SuggestParams struct {
	Prefix *string `form:"prefix"`
}

// RecommendationsParams defines parameters for GET /api/v1/documents/{id}/recommendations.
type RecommendationsParams struct {
	Limit *int `form:"limit"`
}

// paramError reports a malformed query or path parameter.
type paramError struct {
	name string
	err  error
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.name, e.err)
}

func (e *paramError) Unwrap() error { return e.err }

func bindQuery(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return &paramError{name: name, err: err}
	}
	return nil
}

func bindSearchParams(r *http.Request) (SearchParams, error) {
	var p SearchParams
	bindings := []struct {
		name string
		dest any
	}{
		{"q", &p.Q},
		{"brand", &p.Brand},
		{"color", &p.Color},
		{"product_size", &p.ProductSize},
		{"category", &p.Category},
		{"condition", &p.Condition},
		{"tags", &p.Tags},
		{"min_price", &p.MinPrice},
		{"max_price", &p.MaxPrice},
		{"min_rating", &p.MinRating},
		{"page", &p.Page},
		{"size", &p.Size},
		{"sort", &p.Sort},
	}
	for _, b := range bindings {
		if err := bindQuery(r, b.name, b.dest); err != nil {
			return SearchParams{}, err
		}
	}
	return p, nil
}

func bindSuggestParams(r *http.Request) (SuggestParams, error) {
	var p SuggestParams
	err := bindQuery(r, "prefix", &p.Prefix)
	return p, err
}

func bindRecommendationsParams(r *http.Request) (RecommendationsParams, error) {
	var p RecommendationsParams
	err := bindQuery(r, "limit", &p.Limit)
	return p, err
}

func bindDocumentID(r *http.Request) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", &paramError{name: "id", err: err}
	}
	return id, nil
}

// options converts bound parameters into search request options.
func (p *SearchParams) options() []request.Option {
	var opts []request.Option
	if p.Q != nil {
		opts = append(opts, request.WithQuery(*p.Q))
	}
	if p.Brand != nil {
		opts = append(opts, request.WithBrand(*p.Brand))
	}
	if p.Color != nil {
		opts = append(opts, request.WithColor(*p.Color))
	}
	if p.ProductSize != nil {
		opts = append(opts, request.WithProductSize(*p.ProductSize))
	}
	if p.Category != nil {
		opts = append(opts, request.WithCategory(*p.Category))
	}
	if p.Condition != nil {
		opts = append(opts, request.WithCondition(*p.Condition))
	}
	if p.Tags != nil {
		opts = append(opts, request.WithTags(*p.Tags...))
	}
	if p.MinPrice != nil {
		opts = append(opts, request.WithMinPrice(*p.MinPrice))
	}
	if p.MaxPrice != nil {
		opts = append(opts, request.WithMaxPrice(*p.MaxPrice))
	}
	if p.MinRating != nil {
		opts = append(opts, request.WithMinRating(*p.MinRating))
	}
	if p.Page != nil {
		opts = append(opts, request.WithPage(*p.Page))
	}
	if p.Size != nil {
		opts = append(opts, request.WithPageSize(*p.Size))
	}
	if p.Sort != nil {
		opts = append(opts, request.WithTiebreak(tiebreak.Tiebreak(*p.Sort)))
	}
	return opts
}
