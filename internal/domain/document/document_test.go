package document

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/seekr/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func validAttrs() Attributes {
	return Attributes{
		Title:    "Nike Air Max 270",
		Content:  "Running shoes",
		Category: "shoes",
		Brand:    "Nike",
		Tags:     []string{"running", "air"},
		Price:    ptr(150),
		Rating:   ptr(4.5),
	}
}

func TestNew_Valid(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))

	doc, err := New("p-1", validAttrs(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID() != "p-1" {
		t.Errorf("ID() = %q", doc.ID())
	}
	if doc.Title() != "Nike Air Max 270" || doc.Brand() != "Nike" {
		t.Errorf("unexpected attributes %+v", doc.Attributes())
	}
	if !doc.CreatedAt().Equal(now) || !doc.UpdatedAt().Equal(doc.CreatedAt()) {
		t.Errorf("timestamps = %v / %v", doc.CreatedAt(), doc.UpdatedAt())
	}
	if doc.CreatedAt().Location() != time.UTC {
		t.Error("timestamps must be stored in UTC")
	}
	if doc.LastInteraction() != nil {
		t.Error("new document has no interactions")
	}
}

func TestNew_ClonesInput(t *testing.T) {
	attrs := validAttrs()
	doc, _ := New("p-1", attrs, time.Now())

	attrs.Tags[0] = "mutated"
	*attrs.Price = 999

	if doc.Tags()[0] != "running" {
		t.Error("tag mutation leaked into document")
	}
	if *doc.Price() != 150 {
		t.Error("price mutation leaked into document")
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		mut   func(a *Attributes)
		field string
	}{
		{"empty id", "", func(*Attributes) {}, "id"},
		{"bad id", "a/b", func(*Attributes) {}, "id"},
		{"long id", strings.Repeat("a", 257), func(*Attributes) {}, "id"},
		{"blank title", "p", func(a *Attributes) { a.Title = "   " }, "title"},
		{"long title", "p", func(a *Attributes) { a.Title = strings.Repeat("t", MaxTitleLength+1) }, "title"},
		{"huge content", "p", func(a *Attributes) { a.Content = strings.Repeat("c", MaxContentSize+1) }, "content"},
		{"negative price", "p", func(a *Attributes) { a.Price = ptr(-1) }, "price"},
		{"rating above 5", "p", func(a *Attributes) { a.Rating = ptr(5.1) }, "rating"},
		{"negative rating", "p", func(a *Attributes) { a.Rating = ptr(-0.1) }, "rating"},
		{"blank tag", "p", func(a *Attributes) { a.Tags = []string{"ok", " "} }, "tags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := validAttrs()
			tt.mut(&attrs)

			_, err := New(tt.id, attrs, time.Now())
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Errorf("expected field %q, got %#v", tt.field, err)
			}
		})
	}
}

func TestNew_RatingBounds(t *testing.T) {
	for _, r := range []float64{0, 5} {
		attrs := validAttrs()
		attrs.Rating = ptr(r)
		if _, err := New("p", attrs, time.Now()); err != nil {
			t.Errorf("rating %v must be valid: %v", r, err)
		}
	}
}

func TestFormattedPrice(t *testing.T) {
	d := Reconstruct("p", Attributes{Price: ptr(150)}, Counters{}, time.Time{}, time.Time{}, nil)
	if got := d.FormattedPrice(); got != "$150.00" {
		t.Errorf("FormattedPrice() = %q", got)
	}
	d = Reconstruct("p", Attributes{Price: ptr(19.999)}, Counters{}, time.Time{}, time.Time{}, nil)
	if got := d.FormattedPrice(); got != "$20.00" {
		t.Errorf("FormattedPrice() = %q", got)
	}
	d = Reconstruct("p", Attributes{}, Counters{}, time.Time{}, time.Time{}, nil)
	if got := d.FormattedPrice(); got != "N/A" {
		t.Errorf("FormattedPrice() = %q", got)
	}
}

func TestFormattedRating(t *testing.T) {
	d := Reconstruct("p", Attributes{Rating: ptr(4.25)}, Counters{}, time.Time{}, time.Time{}, nil)
	if got := d.FormattedRating(); got != "4.2/5.0" && got != "4.3/5.0" {
		t.Errorf("FormattedRating() = %q", got)
	}
	d = Reconstruct("p", Attributes{Rating: ptr(5)}, Counters{}, time.Time{}, time.Time{}, nil)
	if got := d.FormattedRating(); got != "5.0/5.0" {
		t.Errorf("FormattedRating() = %q", got)
	}
	d = Reconstruct("p", Attributes{}, Counters{}, time.Time{}, time.Time{}, nil)
	if got := d.FormattedRating(); got != "No rating" {
		t.Errorf("FormattedRating() = %q", got)
	}
}

func TestExcerpt(t *testing.T) {
	short := Reconstruct("p", Attributes{Content: "short"}, Counters{}, time.Time{}, time.Time{}, nil)
	if got := short.Excerpt(); got != "short" {
		t.Errorf("Excerpt() = %q", got)
	}

	exact := Reconstruct("p", Attributes{Content: strings.Repeat("a", 150)}, Counters{}, time.Time{}, time.Time{}, nil)
	if got := exact.Excerpt(); got != strings.Repeat("a", 150) {
		t.Errorf("content of exactly 150 runes must not be truncated, got %d runes", len([]rune(got)))
	}

	long := Reconstruct("p", Attributes{Content: strings.Repeat("ж", 200)}, Counters{}, time.Time{}, time.Time{}, nil)
	got := long.Excerpt()
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated excerpt must end with ellipsis: %q", got)
	}
	if n := len([]rune(strings.TrimSuffix(got, "..."))); n != 150 {
		t.Errorf("excerpt must keep 150 runes, got %d", n)
	}
}
