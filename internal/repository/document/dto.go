package document

import (
	"encoding/json"
	"fmt"
	"time"

	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/document/patch"
	"github.com/kailas-cloud/seekr/internal/repository/schema"
)

// source is the stored JSON form of a product. The id lives in _id, not here.
type source struct {
	Title           string     `json:"title"`
	Content         string     `json:"content,omitempty"`
	Category        string     `json:"category,omitempty"`
	Brand           string     `json:"brand,omitempty"`
	Color           string     `json:"color,omitempty"`
	Size            string     `json:"size,omitempty"`
	Condition       string     `json:"condition,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	Price           *float64   `json:"price,omitempty"`
	Rating          *float64   `json:"rating,omitempty"`
	Popularity      float64    `json:"popularity_score"`
	Boosted         bool       `json:"is_boosted"`
	Views           int64      `json:"views"`
	Clicks          int64      `json:"clicks"`
	Likes           int64      `json:"likes"`
	Saves           int64      `json:"saves"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	LastInteraction *time.Time `json:"last_interaction,omitempty"`
}

func toSource(doc *domdoc.Document) source {
	a := doc.Attributes()
	c := doc.Counters()
	return source{
		Title:           a.Title,
		Content:         a.Content,
		Category:        a.Category,
		Brand:           a.Brand,
		Color:           a.Color,
		Size:            a.Size,
		Condition:       a.Condition,
		Tags:            a.Tags,
		Price:           a.Price,
		Rating:          a.Rating,
		Popularity:      a.Popularity,
		Boosted:         a.Boosted,
		Views:           c.Views,
		Clicks:          c.Clicks,
		Likes:           c.Likes,
		Saves:           c.Saves,
		CreatedAt:       doc.CreatedAt(),
		UpdatedAt:       doc.UpdatedAt(),
		LastInteraction: doc.LastInteraction(),
	}
}

func (s *source) toDocument(id string) domdoc.Document {
	return domdoc.Reconstruct(id,
		domdoc.Attributes{
			Title:      s.Title,
			Content:    s.Content,
			Category:   s.Category,
			Brand:      s.Brand,
			Color:      s.Color,
			Size:       s.Size,
			Condition:  s.Condition,
			Tags:       s.Tags,
			Price:      s.Price,
			Rating:     s.Rating,
			Popularity: s.Popularity,
			Boosted:    s.Boosted,
		},
		domdoc.Counters{Views: s.Views, Clicks: s.Clicks, Likes: s.Likes, Saves: s.Saves},
		s.CreatedAt, s.UpdatedAt, s.LastInteraction,
	)
}

// Decode hydrates a document from its stored source.
func Decode(id string, raw []byte) (domdoc.Document, error) {
	var s source
	if err := json.Unmarshal(raw, &s); err != nil {
		return domdoc.Document{}, fmt.Errorf("decode document %s: %w", id, err)
	}
	return s.toDocument(id), nil
}

// patchSource renders only the patched fields plus updated_at.
func patchSource(f patch.Fields, updatedAt time.Time) map[string]any {
	m := map[string]any{schema.FieldUpdatedAt: updatedAt}
	putString(m, schema.FieldTitle, f.Title)
	putString(m, schema.FieldContent, f.Content)
	putString(m, schema.FieldCategory, f.Category)
	putString(m, schema.FieldBrand, f.Brand)
	putString(m, schema.FieldColor, f.Color)
	putString(m, schema.FieldSize, f.Size)
	putString(m, schema.FieldCondition, f.Condition)
	if f.Tags != nil {
		m[schema.FieldTags] = *f.Tags
	}
	if f.Price != nil {
		m[schema.FieldPrice] = *f.Price
	}
	if f.Rating != nil {
		m[schema.FieldRating] = *f.Rating
	}
	if f.Popularity != nil {
		m[schema.FieldPopularity] = *f.Popularity
	}
	if f.Boosted != nil {
		m[schema.FieldBoosted] = *f.Boosted
	}
	return m
}

func putString(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}
