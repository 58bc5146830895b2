package chi

import (
	"time"

	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/seekr/internal/usecase/health"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest        ErrorCode = "bad_request"
	ErrorCodeUnauthorized      ErrorCode = "unauthorized"
	ErrorCodeNotFound          ErrorCode = "not_found"
	ErrorCodeValidationFailed  ErrorCode = "validation_failed"
	ErrorCodeEngineUnavailable ErrorCode = "engine_unavailable"
	ErrorCodeEngineRejected    ErrorCode = "engine_rejected"
	ErrorCodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Checks  map[string]string `json:"checks"`
}

// Document is the REST representation of a product.
type Document struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	Category        string     `json:"category,omitempty"`
	Brand           string     `json:"brand,omitempty"`
	Color           string     `json:"color,omitempty"`
	Size            string     `json:"size,omitempty"`
	Condition       string     `json:"condition,omitempty"`
	Tags            []string   `json:"tags"`
	Price           *float64   `json:"price,omitempty"`
	Rating          *float64   `json:"rating,omitempty"`
	PopularityScore float64    `json:"popularity_score"`
	IsBoosted       bool       `json:"is_boosted"`
	Views           int64      `json:"views"`
	Clicks          int64      `json:"clicks"`
	Likes           int64      `json:"likes"`
	Saves           int64      `json:"saves"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	LastInteraction *time.Time `json:"last_interaction,omitempty"`
	FormattedPrice  string     `json:"formatted_price"`
	FormattedRating string     `json:"formatted_rating"`
	Excerpt         string     `json:"excerpt"`
}

// SearchResponse is the body of GET /api/v1/search.
type SearchResponse struct {
	Items   []Document `json:"items"`
	Total   int        `json:"total"`
	Took    int64      `json:"took"`
	Page    int        `json:"page"`
	Size    int        `json:"size"`
	HasMore bool       `json:"has_more"`
}

// SuggestResponse is the body of GET /api/v1/suggest.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// DocumentListResponse wraps a plain list of documents.
type DocumentListResponse struct {
	Items []Document `json:"items"`
}

// DocumentToAPI converts a domain document to its JSON representation.
func DocumentToAPI(doc *domdoc.Document) Document {
	tags := doc.Tags()
	if tags == nil {
		tags = []string{}
	}
	c := doc.Counters()
	return Document{
		ID:              doc.ID(),
		Title:           doc.Title(),
		Content:         doc.Content(),
		Category:        doc.Category(),
		Brand:           doc.Brand(),
		Color:           doc.Color(),
		Size:            doc.Size(),
		Condition:       doc.Condition(),
		Tags:            tags,
		Price:           doc.Price(),
		Rating:          doc.Rating(),
		PopularityScore: doc.Popularity(),
		IsBoosted:       doc.Boosted(),
		Views:           c.Views,
		Clicks:          c.Clicks,
		Likes:           c.Likes,
		Saves:           c.Saves,
		CreatedAt:       doc.CreatedAt(),
		UpdatedAt:       doc.UpdatedAt(),
		LastInteraction: doc.LastInteraction(),
		FormattedPrice:  doc.FormattedPrice(),
		FormattedRating: doc.FormattedRating(),
		Excerpt:         doc.Excerpt(),
	}
}

// DocumentsToAPI converts a slice of documents.
func DocumentsToAPI(docs []domdoc.Document) []Document {
	out := make([]Document, len(docs))
	for i := range docs {
		out[i] = DocumentToAPI(&docs[i])
	}
	return out
}

// SearchResultToAPI converts a search result page.
func SearchResultToAPI(res *result.Result) SearchResponse {
	return SearchResponse{
		Items:   DocumentsToAPI(res.Documents()),
		Total:   res.Total(),
		Took:    res.Took(),
		Page:    res.Page(),
		Size:    res.Size(),
		HasMore: res.HasMore(),
	}
}

func healthToAPI(r healthuc.Report) HealthResponse {
	status := "up"
	if !r.Up() {
		status = "down"
	}
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return HealthResponse{Status: status, Message: r.Message, Checks: checks}
}
