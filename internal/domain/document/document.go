package document

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kailas-cloud/seekr/internal/domain"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Field limits.
const (
	MaxIDLength    = 256
	MaxTitleLength = 512
	MaxContentSize = 163840 // 160KB
	MaxTags        = 50
	MaxRating      = 5.0
	ExcerptRunes   = 150
)

const (
	excerptEllipsis = "..."
	noPriceLabel    = "N/A"
	noRatingLabel   = "No rating"
)

// Attributes are the caller-supplied fields of a document.
type Attributes struct {
	Title      string
	Content    string
	Category   string
	Brand      string
	Color      string
	Size       string
	Condition  string
	Tags       []string
	Price      *float64
	Rating     *float64
	Popularity float64
	Boosted    bool
}

// Counters are interaction totals maintained by the system.
type Counters struct {
	Views  int64
	Clicks int64
	Likes  int64
	Saves  int64
}

// Document is one indexed product (immutable value object).
type Document struct {
	id              string
	attrs           Attributes
	counters        Counters
	createdAt       time.Time
	updatedAt       time.Time
	lastInteraction *time.Time
}

// New validates attributes and creates a Document stamped with now.
func New(id string, attrs Attributes, now time.Time) (Document, error) {
	if err := ValidateID(id); err != nil {
		return Document{}, err
	}
	if err := attrs.Validate(); err != nil {
		return Document{}, err
	}
	now = now.UTC()
	return Document{
		id:        id,
		attrs:     attrs.clone(),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(
	id string, attrs Attributes, counters Counters,
	createdAt, updatedAt time.Time, lastInteraction *time.Time,
) Document {
	return Document{
		id: id, attrs: attrs, counters: counters,
		createdAt: createdAt, updatedAt: updatedAt, lastInteraction: lastInteraction,
	}
}

// ValidateID checks a caller-assigned identifier: ^[a-zA-Z0-9_-]+$, 1-256 chars.
func ValidateID(id string) error {
	if id == "" {
		return domain.NewValidation("id", "is required")
	}
	if len(id) > MaxIDLength {
		return domain.NewValidation("id", fmt.Sprintf("too long (max %d)", MaxIDLength))
	}
	if !idRegex.MatchString(id) {
		return domain.NewValidation("id", "must be alphanumeric with underscores and hyphens")
	}
	return nil
}

// Validate checks attribute bounds.
func (a Attributes) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return domain.NewValidation("title", "is required")
	}
	if err := ValidateTitle(a.Title); err != nil {
		return err
	}
	if len(a.Content) > MaxContentSize {
		return domain.NewValidation("content", fmt.Sprintf("too large (max %d bytes)", MaxContentSize))
	}
	if err := ValidateTags(a.Tags); err != nil {
		return err
	}
	if err := ValidatePrice(a.Price); err != nil {
		return err
	}
	if err := ValidateRating(a.Rating); err != nil {
		return err
	}
	return ValidatePopularity(a.Popularity)
}

// ValidatePopularity rejects NaN and infinite scores, which the engine cannot store.
func ValidatePopularity(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return domain.NewValidation("popularity_score", "must be a finite number")
	}
	return nil
}

// ValidateTitle checks the title length.
func ValidateTitle(title string) error {
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return domain.NewValidation("title", fmt.Sprintf("too long (max %d chars)", MaxTitleLength))
	}
	return nil
}

// ValidateTags checks tag count and that no tag is blank.
func ValidateTags(tags []string) error {
	if len(tags) > MaxTags {
		return domain.NewValidation("tags", fmt.Sprintf("too many (max %d)", MaxTags))
	}
	for _, t := range tags {
		if strings.TrimSpace(t) == "" {
			return domain.NewValidation("tags", "must not contain blank values")
		}
	}
	return nil
}

// ValidatePrice checks price >= 0; nil is valid.
func ValidatePrice(p *float64) error {
	if p == nil {
		return nil
	}
	if math.IsNaN(*p) || math.IsInf(*p, 0) || *p < 0 {
		return domain.NewValidation("price", "must be a non-negative number")
	}
	return nil
}

// ValidateRating checks 0 <= rating <= 5; nil is valid.
func ValidateRating(r *float64) error {
	if r == nil {
		return nil
	}
	if math.IsNaN(*r) || *r < 0 || *r > MaxRating {
		return domain.NewValidation("rating", "must be between 0 and 5")
	}
	return nil
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Attributes returns a copy of the caller-supplied fields.
func (d *Document) Attributes() Attributes { return d.attrs.clone() }

// Title returns the title.
func (d *Document) Title() string { return d.attrs.Title }

// Content returns the description.
func (d *Document) Content() string { return d.attrs.Content }

// Category returns the category.
func (d *Document) Category() string { return d.attrs.Category }

// Brand returns the brand.
func (d *Document) Brand() string { return d.attrs.Brand }

// Color returns the color.
func (d *Document) Color() string { return d.attrs.Color }

// Size returns the product size label.
func (d *Document) Size() string { return d.attrs.Size }

// Condition returns the item condition.
func (d *Document) Condition() string { return d.attrs.Condition }

// Tags returns the tags.
func (d *Document) Tags() []string { return d.attrs.Tags }

// Price returns the price, or nil when unset.
func (d *Document) Price() *float64 { return d.attrs.Price }

// Rating returns the rating, or nil when unset.
func (d *Document) Rating() *float64 { return d.attrs.Rating }

// Popularity returns the popularity score used as ranking tiebreak.
func (d *Document) Popularity() float64 { return d.attrs.Popularity }

// Boosted reports whether the document is preferentially ranked.
func (d *Document) Boosted() bool { return d.attrs.Boosted }

// Counters returns interaction totals.
func (d *Document) Counters() Counters { return d.counters }

// CreatedAt returns the creation time.
func (d *Document) CreatedAt() time.Time { return d.createdAt }

// UpdatedAt returns the last modification time.
func (d *Document) UpdatedAt() time.Time { return d.updatedAt }

// LastInteraction returns the time of the last recorded interaction, or nil.
func (d *Document) LastInteraction() *time.Time { return d.lastInteraction }

// FormattedPrice renders the price as currency, or "N/A".
func (d *Document) FormattedPrice() string {
	if d.attrs.Price == nil {
		return noPriceLabel
	}
	return fmt.Sprintf("$%.2f", *d.attrs.Price)
}

// FormattedRating renders the rating as "x.y/5.0", or "No rating".
func (d *Document) FormattedRating() string {
	if d.attrs.Rating == nil {
		return noRatingLabel
	}
	return fmt.Sprintf("%.1f/5.0", *d.attrs.Rating)
}

// Excerpt returns the first 150 runes of the content, with "..." when truncated.
func (d *Document) Excerpt() string {
	if utf8.RuneCountInString(d.attrs.Content) <= ExcerptRunes {
		return d.attrs.Content
	}
	runes := []rune(d.attrs.Content)
	return string(runes[:ExcerptRunes]) + excerptEllipsis
}

func (a Attributes) clone() Attributes {
	c := a
	if a.Tags != nil {
		c.Tags = append([]string(nil), a.Tags...)
	}
	if a.Price != nil {
		p := *a.Price
		c.Price = &p
	}
	if a.Rating != nil {
		r := *a.Rating
		c.Rating = &r
	}
	return c
}
