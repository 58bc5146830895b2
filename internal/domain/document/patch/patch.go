package patch

import (
	"strings"

	"github.com/kailas-cloud/seekr/internal/domain"
	"github.com/kailas-cloud/seekr/internal/domain/document"
)

// Fields lists the mutable attributes of a document. Nil fields are unchanged.
type Fields struct {
	Title      *string
	Content    *string
	Category   *string
	Brand      *string
	Color      *string
	Size       *string
	Condition  *string
	Tags       *[]string
	Price      *float64
	Rating     *float64
	Popularity *float64
	Boosted    *bool
}

// Patch is a validated partial document update.
type Patch struct {
	f Fields
}

// New validates and creates a Patch. At least one field must be provided.
func New(f Fields) (Patch, error) {
	if f.empty() {
		return Patch{}, domain.NewValidation("input", "at least one field must be provided")
	}
	if f.Title != nil {
		if strings.TrimSpace(*f.Title) == "" {
			return Patch{}, domain.NewValidation("title", "must not be blank")
		}
		if err := document.ValidateTitle(*f.Title); err != nil {
			return Patch{}, err
		}
	}
	if f.Content != nil && len(*f.Content) > document.MaxContentSize {
		return Patch{}, domain.NewValidation("content", "too large")
	}
	if f.Tags != nil {
		if err := document.ValidateTags(*f.Tags); err != nil {
			return Patch{}, err
		}
	}
	if err := document.ValidatePrice(f.Price); err != nil {
		return Patch{}, err
	}
	if err := document.ValidateRating(f.Rating); err != nil {
		return Patch{}, err
	}
	if f.Popularity != nil {
		if err := document.ValidatePopularity(*f.Popularity); err != nil {
			return Patch{}, err
		}
	}
	return Patch{f: f}, nil
}

func (f *Fields) empty() bool {
	return f.Title == nil && f.Content == nil && f.Category == nil && f.Brand == nil &&
		f.Color == nil && f.Size == nil && f.Condition == nil && f.Tags == nil &&
		f.Price == nil && f.Rating == nil && f.Popularity == nil && f.Boosted == nil
}

// Fields returns the patched fields.
func (p Patch) Fields() Fields { return p.f }

// Apply merges the patch into attrs and returns the result.
func (p Patch) Apply(attrs document.Attributes) document.Attributes {
	out := attrs
	setString(&out.Title, p.f.Title)
	setString(&out.Content, p.f.Content)
	setString(&out.Category, p.f.Category)
	setString(&out.Brand, p.f.Brand)
	setString(&out.Color, p.f.Color)
	setString(&out.Size, p.f.Size)
	setString(&out.Condition, p.f.Condition)
	if p.f.Tags != nil {
		out.Tags = append([]string(nil), (*p.f.Tags)...)
	}
	if p.f.Price != nil {
		v := *p.f.Price
		out.Price = &v
	}
	if p.f.Rating != nil {
		v := *p.f.Rating
		out.Rating = &v
	}
	if p.f.Popularity != nil {
		out.Popularity = *p.f.Popularity
	}
	if p.f.Boosted != nil {
		out.Boosted = *p.f.Boosted
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
