package search

import (
	"github.com/kailas-cloud/seekr/internal/db/query"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/domain/search/tiebreak"
	"github.com/kailas-cloud/seekr/internal/repository/schema"
)

// SuggestName names the completion suggester in requests and responses.
const SuggestName = "title_suggest"

const textFuzziness = "AUTO"

// Profile affinity boosts.
const (
	brandBoost    = 2
	categoryBoost = 1.5
	colorBoost    = 1.2
)

var textFields = []query.Field{
	{Name: schema.FieldTitle, Boost: 3},
	{Name: schema.FieldContent},
	{Name: schema.FieldBrand},
}

var similarFields = []query.Field{
	{Name: schema.FieldTitle, Boost: 2},
	{Name: schema.FieldContent},
}

// BuildSearch turns a normalized search request into an engine query.
// Every supplied filter becomes one must clause, always in the same order;
// boosted documents rank higher without being required.
func BuildSearch(req *request.Request) *query.Request {
	q := query.NewBool().
		Must(mustClauses(req)...).
		Should(query.Term{Field: schema.FieldBoosted, Value: true}).
		MinimumShouldMatch(0).
		Build()

	return &query.Request{
		Query:          q,
		From:           req.Offset(),
		Size:           req.PageSize(),
		Sort:           searchSort(req.Tiebreak()),
		TrackTotalHits: true,
	}
}

func mustClauses(req *request.Request) []query.Clause {
	var must []query.Clause
	if q := req.Query(); q != "" {
		must = append(must, query.MultiMatch{Query: q, Fields: textFields, Fuzziness: textFuzziness})
	}
	for _, t := range []struct{ field, value string }{
		{schema.FieldBrandKeyword, req.Brand()},
		{schema.FieldColor, req.Color()},
		{schema.FieldSize, req.ProductSize()},
		{schema.FieldCategory, req.Category()},
		{schema.FieldCondition, req.Condition()},
	} {
		if t.value != "" {
			must = append(must, query.Term{Field: t.field, Value: t.value})
		}
	}
	if tags := req.Tags(); len(tags) > 0 {
		must = append(must, query.Terms{Field: schema.FieldTags, Values: tags})
	}
	if req.MinPrice() != nil || req.MaxPrice() != nil {
		must = append(must, query.Range{Field: schema.FieldPrice, GTE: req.MinPrice(), LTE: req.MaxPrice()})
	}
	if req.MinRating() != nil {
		must = append(must, query.Range{Field: schema.FieldRating, GTE: req.MinRating()})
	}
	return must
}

func searchSort(tb tiebreak.Tiebreak) []query.Sort {
	second := query.Sort{Field: schema.FieldPopularity, Order: query.Desc}
	if tb == tiebreak.Recency {
		second = query.Sort{Field: schema.FieldCreatedAt, Order: query.Desc}
	}
	return []query.Sort{{Field: query.ScoreField, Order: query.Desc}, second}
}

// BuildSuggest asks for up to size completions of prefix on the title.
func BuildSuggest(prefix string, size int) *query.Request {
	return &query.Request{
		Suggest: &query.Completion{
			Name:           SuggestName,
			Prefix:         prefix,
			Field:          schema.FieldTitleSuggest,
			Size:           size,
			SkipDuplicates: true,
		},
	}
}

// BuildSimilar finds documents whose text matches doc's title, restricted to
// doc's category and to any of its tags. One extra hit is requested so the
// caller can still fill limit after dropping doc.
func BuildSimilar(doc *domdoc.Document, limit int) *query.Request {
	var filter []query.Clause
	if c := doc.Category(); c != "" {
		filter = append(filter, query.Term{Field: schema.FieldCategory, Value: c})
	}
	if tags := doc.Tags(); len(tags) > 0 {
		filter = append(filter, query.Terms{Field: schema.FieldTags, Values: tags})
	}

	return &query.Request{
		Query: query.NewBool().
			Must(query.MultiMatch{Query: doc.Title(), Fields: similarFields, Fuzziness: textFuzziness}).
			Filter(filter...).
			MustNot(query.IDs{Values: []string{doc.ID()}}).
			Build(),
		Size: limit + 1,
		Sort: searchSort(tiebreak.Recency),
	}
}

// BuildForProfile ranks documents matching any of the user's affinities.
func BuildForProfile(p interaction.Profile, size int) *query.Request {
	var should []query.Clause
	if len(p.Brands) > 0 {
		should = append(should, query.Terms{Field: schema.FieldBrandKeyword, Values: p.Brands, Boost: brandBoost})
	}
	if len(p.Categories) > 0 {
		should = append(should, query.Terms{Field: schema.FieldCategory, Values: p.Categories, Boost: categoryBoost})
	}
	if len(p.Colors) > 0 {
		should = append(should, query.Terms{Field: schema.FieldColor, Values: p.Colors, Boost: colorBoost})
	}

	return &query.Request{
		Query: query.NewBool().Should(should...).MinimumShouldMatch(1).Build(),
		Size:  size,
		Sort:  popularitySort(),
	}
}

// BuildPopular returns the most popular documents.
func BuildPopular(size int) *query.Request {
	return &query.Request{Query: query.MatchAll{}, Size: size, Sort: popularitySort()}
}

// BuildBrowse fetches up to size documents for client-side distinct listings.
func BuildBrowse(size int) *query.Request {
	return &query.Request{Query: query.MatchAll{}, Size: size}
}

func popularitySort() []query.Sort {
	return []query.Sort{
		{Field: schema.FieldPopularity, Order: query.Desc},
		{Field: schema.FieldViews, Order: query.Desc},
	}
}
