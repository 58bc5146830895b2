// Package query is a typed representation of the engine query DSL.
//
// Each clause is a tagged struct that renders its own JSON, so the same
// Request always serializes to the same bytes.
package query

import (
	"encoding/json"
	"strconv"
)

// Clause is a single node of a query tree.
type Clause interface {
	json.Marshaler
	isClause()
}

// MatchAll matches every document.
type MatchAll struct{}

// MultiMatch is a full-text match over several weighted fields.
type MultiMatch struct {
	Query     string
	Fields    []Field
	Fuzziness string // "AUTO", "0", "1", "2" or empty
}

// Field is a field reference with an optional boost.
type Field struct {
	Name  string
	Boost float64 // 0 or 1 = no boost
}

// String renders the field in name^boost notation.
func (f Field) String() string {
	if f.Boost == 0 || f.Boost == 1 {
		return f.Name
	}
	return f.Name + "^" + strconv.FormatFloat(f.Boost, 'f', -1, 64)
}

// Term is an exact match on a single value (string, bool or number).
type Term struct {
	Field string
	Value any
	Boost float64
}

// Terms matches any of the given values.
type Terms struct {
	Field  string
	Values []string
	Boost  float64
}

// Range is a numeric range; nil bounds are omitted.
type Range struct {
	Field string
	GTE   *float64
	LTE   *float64
}

// IDs matches documents by identifier.
type IDs struct {
	Values []string
}

// Bool combines clauses.
type Bool struct {
	Must               []Clause
	Should             []Clause
	Filter             []Clause
	MustNot            []Clause
	MinimumShouldMatch *int
}

func (MatchAll) isClause()   {}
func (MultiMatch) isClause() {}
func (Term) isClause()       {}
func (Terms) isClause()      {}
func (Range) isClause()      {}
func (IDs) isClause()        {}
func (*Bool) isClause()      {}

// MarshalJSON implements json.Marshaler.
func (MatchAll) MarshalJSON() ([]byte, error) {
	return []byte(`{"match_all":{}}`), nil
}

type multiMatchBody struct {
	Query     string   `json:"query"`
	Fields    []string `json:"fields"`
	Fuzziness string   `json:"fuzziness,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (m MultiMatch) MarshalJSON() ([]byte, error) {
	fields := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		fields[i] = f.String()
	}
	return json.Marshal(map[string]multiMatchBody{
		"multi_match": {Query: m.Query, Fields: fields, Fuzziness: m.Fuzziness},
	})
}

// MarshalJSON implements json.Marshaler.
func (t Term) MarshalJSON() ([]byte, error) {
	if t.Boost == 0 {
		return json.Marshal(map[string]map[string]any{"term": {t.Field: t.Value}})
	}
	return json.Marshal(map[string]map[string]any{
		"term": {t.Field: map[string]any{"value": t.Value, "boost": t.Boost}},
	})
}

// MarshalJSON implements json.Marshaler.
func (t Terms) MarshalJSON() ([]byte, error) {
	values := t.Values
	if values == nil {
		values = []string{}
	}
	body := map[string]any{t.Field: values}
	if t.Boost != 0 {
		body["boost"] = t.Boost
	}
	return json.Marshal(map[string]any{"terms": body})
}

// MarshalJSON implements json.Marshaler.
func (r Range) MarshalJSON() ([]byte, error) {
	bounds := struct {
		GTE *float64 `json:"gte,omitempty"`
		LTE *float64 `json:"lte,omitempty"`
	}{GTE: r.GTE, LTE: r.LTE}
	return json.Marshal(map[string]map[string]any{"range": {r.Field: bounds}})
}

// MarshalJSON implements json.Marshaler.
func (ids IDs) MarshalJSON() ([]byte, error) {
	values := ids.Values
	if values == nil {
		values = []string{}
	}
	return json.Marshal(map[string]map[string][]string{"ids": {"values": values}})
}

type boolBody struct {
	Must               []Clause `json:"must,omitempty"`
	Should             []Clause `json:"should,omitempty"`
	Filter             []Clause `json:"filter,omitempty"`
	MustNot            []Clause `json:"must_not,omitempty"`
	MinimumShouldMatch *int     `json:"minimum_should_match,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (b *Bool) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]boolBody{"bool": {
		Must:               b.Must,
		Should:             b.Should,
		Filter:             b.Filter,
		MustNot:            b.MustNot,
		MinimumShouldMatch: b.MinimumShouldMatch,
	}})
}

// Float returns a pointer to v, for Range bounds.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for MinimumShouldMatch.
func Int(v int) *int { return &v }
