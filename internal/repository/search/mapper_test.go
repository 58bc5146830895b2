package search

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/seekr/internal/db"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
)

func TestMapHits(t *testing.T) {
	hits := []db.Hit{
		hit(t, "b", map[string]any{"title": "Second", "price": 10}),
		hit(t, "a", map[string]any{"title": "First", "rating": 4.5}),
	}

	docs, err := MapHits(hits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 || docs[0].ID() != "b" || docs[1].ID() != "a" {
		t.Fatalf("engine order not kept: %v", docs)
	}
	if docs[0].FormattedPrice() != "$10.00" || docs[0].FormattedRating() != "No rating" {
		t.Errorf("derived fields = %q %q", docs[0].FormattedPrice(), docs[0].FormattedRating())
	}
	if docs[1].FormattedRating() != "4.5/5.0" {
		t.Errorf("FormattedRating() = %q", docs[1].FormattedRating())
	}
}

func TestMapHits_Malformed(t *testing.T) {
	_, err := MapHits([]db.Hit{{ID: "x", Source: []byte(`{"title": 5}`)}})
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestDistinctValues(t *testing.T) {
	docs := []domdoc.Document{
		testDoc(t, "a", domdoc.Attributes{Title: "a", Category: "shoes", Tags: []string{"sale", "running"}}),
		testDoc(t, "b", domdoc.Attributes{Title: "b", Category: "apparel", Tags: []string{"sale"}}),
		testDoc(t, "c", domdoc.Attributes{Title: "c"}),
		testDoc(t, "d", domdoc.Attributes{Title: "d", Category: "shoes"}),
	}

	if got := DistinctValues(docs, CategoryFacet); !reflect.DeepEqual(got, []string{"apparel", "shoes"}) {
		t.Errorf("categories = %v", got)
	}
	if got := DistinctValues(docs, TagFacet); !reflect.DeepEqual(got, []string{"running", "sale"}) {
		t.Errorf("tags = %v", got)
	}
	if got := DistinctValues(nil, TagFacet); got == nil || len(got) != 0 {
		t.Errorf("empty input = %v, want empty non-nil", got)
	}
}

func TestMapSuggestions(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		size int
		want []string
	}{
		{"dedupe keeps first spelling", []string{"Nike Air", "NIKE AIR", "nike air max"}, 5, []string{"Nike Air", "nike air max"}},
		{"cap", []string{"a", "b", "c", "d"}, 2, []string{"a", "b"}},
		{"skip blank", []string{"", "x"}, 5, []string{"x"}},
		{"none", nil, 5, []string{}},
		{"zero size", []string{"a"}, 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapSuggestions(tt.raw, tt.size); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MapSuggestions() = %v, want %v", got, tt.want)
			}
		})
	}
}
