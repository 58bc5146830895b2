package query

import "encoding/json"

// Order is a sort direction.
type Order string

// Sort directions.
const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// ScoreField is the pseudo-field holding relevance score.
const ScoreField = "_score"

// Sort orders results by a field.
type Sort struct {
	Field string
	Order Order
}

// MarshalJSON implements json.Marshaler.
func (s Sort) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[string]Order{s.Field: {"order": s.Order}})
}

// Completion is a prefix suggestion request against a completion field.
type Completion struct {
	Name           string
	Prefix         string
	Field          string
	Size           int
	SkipDuplicates bool
}

type completionBody struct {
	Field          string `json:"field"`
	Size           int    `json:"size,omitempty"`
	SkipDuplicates bool   `json:"skip_duplicates,omitempty"`
}

type suggesterBody struct {
	Prefix     string         `json:"prefix"`
	Completion completionBody `json:"completion"`
}

// Request is a complete search request body.
type Request struct {
	Query          Clause
	From           int
	Size           int
	Sort           []Sort
	TrackTotalHits bool
	Suggest        *Completion
}

type requestBody struct {
	From           int                      `json:"from,omitempty"`
	Size           int                      `json:"size"`
	Query          Clause                   `json:"query,omitempty"`
	Sort           []Sort                   `json:"sort,omitempty"`
	TrackTotalHits bool                     `json:"track_total_hits,omitempty"`
	Suggest        map[string]suggesterBody `json:"suggest,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r *Request) MarshalJSON() ([]byte, error) {
	body := requestBody{
		From:           r.From,
		Size:           r.Size,
		Query:          r.Query,
		Sort:           r.Sort,
		TrackTotalHits: r.TrackTotalHits,
	}
	if r.Suggest != nil {
		body.Suggest = map[string]suggesterBody{
			r.Suggest.Name: {
				Prefix: r.Suggest.Prefix,
				Completion: completionBody{
					Field:          r.Suggest.Field,
					Size:           r.Suggest.Size,
					SkipDuplicates: r.Suggest.SkipDuplicates,
				},
			},
		}
	}
	return json.Marshal(body)
}

// BoolBuilder is a fluent builder for Bool clauses.
type BoolBuilder struct {
	b Bool
}

// NewBool starts a bool clause.
func NewBool() *BoolBuilder {
	return &BoolBuilder{}
}

// Must appends required scoring clauses.
func (bb *BoolBuilder) Must(c ...Clause) *BoolBuilder {
	bb.b.Must = append(bb.b.Must, c...)
	return bb
}

// Should appends optional scoring clauses.
func (bb *BoolBuilder) Should(c ...Clause) *BoolBuilder {
	bb.b.Should = append(bb.b.Should, c...)
	return bb
}

// Filter appends required non-scoring clauses.
func (bb *BoolBuilder) Filter(c ...Clause) *BoolBuilder {
	bb.b.Filter = append(bb.b.Filter, c...)
	return bb
}

// MustNot appends exclusion clauses.
func (bb *BoolBuilder) MustNot(c ...Clause) *BoolBuilder {
	bb.b.MustNot = append(bb.b.MustNot, c...)
	return bb
}

// MinimumShouldMatch sets how many should clauses must match.
func (bb *BoolBuilder) MinimumShouldMatch(n int) *BoolBuilder {
	bb.b.MinimumShouldMatch = Int(n)
	return bb
}

// Build returns the bool clause.
func (bb *BoolBuilder) Build() *Bool {
	b := bb.b
	return &b
}
