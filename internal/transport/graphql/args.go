package graphql

import (
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/document/patch"
	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/domain/search/tiebreak"
	documentuc "github.com/kailas-cloud/seekr/internal/usecase/document"
)

func inputMap(args map[string]any, key string) map[string]any {
	m, _ := args[key].(map[string]any)
	return m
}

func stringArg(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

func stringPtr(m map[string]any, key string) *string {
	if s, ok := stringArg(m, key); ok {
		return &s
	}
	return nil
}

func intArg(m map[string]any, key string) int {
	n, _ := m[key].(int)
	return n
}

func floatPtr(m map[string]any, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

func boolPtr(m map[string]any, key string) *bool {
	if b, ok := m[key].(bool); ok {
		return &b
	}
	return nil
}

func stringsArg(m map[string]any, key string) ([]string, bool) {
	raw, ok := m[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

func createInput(m map[string]any) documentuc.CreateInput {
	id, _ := stringArg(m, "id")
	title, _ := stringArg(m, "title")
	attrs := domdoc.Attributes{Title: title}
	attrs.Content, _ = stringArg(m, "content")
	attrs.Category, _ = stringArg(m, "category")
	attrs.Brand, _ = stringArg(m, "brand")
	attrs.Color, _ = stringArg(m, "color")
	attrs.Size, _ = stringArg(m, "size")
	attrs.Condition, _ = stringArg(m, "condition")
	attrs.Tags, _ = stringsArg(m, "tags")
	attrs.Price = floatPtr(m, "price")
	attrs.Rating = floatPtr(m, "rating")
	if p := floatPtr(m, "popularityScore"); p != nil {
		attrs.Popularity = *p
	}
	if b := boolPtr(m, "isBoosted"); b != nil {
		attrs.Boosted = *b
	}
	return documentuc.CreateInput{ID: id, Attributes: attrs}
}

func patchFields(m map[string]any) patch.Fields {
	f := patch.Fields{
		Title:      stringPtr(m, "title"),
		Content:    stringPtr(m, "content"),
		Category:   stringPtr(m, "category"),
		Brand:      stringPtr(m, "brand"),
		Color:      stringPtr(m, "color"),
		Size:       stringPtr(m, "size"),
		Condition:  stringPtr(m, "condition"),
		Price:      floatPtr(m, "price"),
		Rating:     floatPtr(m, "rating"),
		Popularity: floatPtr(m, "popularityScore"),
		Boosted:    boolPtr(m, "isBoosted"),
	}
	if tags, ok := stringsArg(m, "tags"); ok {
		f.Tags = &tags
	}
	return f
}

func searchOptions(m map[string]any) []request.Option {
	var opts []request.Option
	if v, ok := stringArg(m, "query"); ok {
		opts = append(opts, request.WithQuery(v))
	}
	if v, ok := stringArg(m, "brand"); ok {
		opts = append(opts, request.WithBrand(v))
	}
	if v, ok := stringArg(m, "color"); ok {
		opts = append(opts, request.WithColor(v))
	}
	if v, ok := stringArg(m, "productSize"); ok {
		opts = append(opts, request.WithProductSize(v))
	}
	if v, ok := stringArg(m, "category"); ok {
		opts = append(opts, request.WithCategory(v))
	}
	if v, ok := stringArg(m, "condition"); ok {
		opts = append(opts, request.WithCondition(v))
	}
	if v, ok := stringsArg(m, "tags"); ok {
		opts = append(opts, request.WithTags(v...))
	}
	if v := floatPtr(m, "minPrice"); v != nil {
		opts = append(opts, request.WithMinPrice(*v))
	}
	if v := floatPtr(m, "maxPrice"); v != nil {
		opts = append(opts, request.WithMaxPrice(*v))
	}
	if v := floatPtr(m, "minRating"); v != nil {
		opts = append(opts, request.WithMinRating(*v))
	}
	if v := intArg(m, "page"); v != 0 {
		opts = append(opts, request.WithPage(v))
	}
	if v := intArg(m, "size"); v != 0 {
		opts = append(opts, request.WithPageSize(v))
	}
	if v, ok := stringArg(m, "sort"); ok {
		opts = append(opts, request.WithTiebreak(tiebreak.Tiebreak(v)))
	}
	return opts
}
