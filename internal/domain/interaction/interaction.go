package interaction

import (
	"strings"

	"github.com/kailas-cloud/seekr/internal/domain"
)

// Kind is a user interaction with a document.
type Kind string

// Interaction kinds.
const (
	View  Kind = "view"
	Click Kind = "click"
	Like  Kind = "like"
	Save  Kind = "save"
)

// Kinds lists every supported kind in weight order.
var Kinds = []Kind{View, Click, Like, Save}

// Parse converts user input into a Kind (case-insensitive).
func Parse(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", domain.NewValidation("kind", "must be one of view, click, like, save")
	}
	return k, nil
}

// IsValid checks if the kind is supported.
func (k Kind) IsValid() bool {
	return k == View || k == Click || k == Like || k == Save
}

// CounterField returns the document field counting this kind.
func (k Kind) CounterField() string {
	switch k {
	case View:
		return "views"
	case Click:
		return "clicks"
	case Like:
		return "likes"
	case Save:
		return "saves"
	}
	return ""
}

// Weight is the affinity increment this kind adds to a user profile.
func (k Kind) Weight() float64 {
	switch k {
	case View:
		return 1
	case Click:
		return 2
	case Like:
		return 3
	case Save:
		return 4
	}
	return 0
}

// Profile holds a user's strongest affinities, best first.
type Profile struct {
	Brands     []string
	Categories []string
	Colors     []string
}

// IsEmpty reports whether the profile has no affinities at all.
func (p Profile) IsEmpty() bool {
	return len(p.Brands) == 0 && len(p.Categories) == 0 && len(p.Colors) == 0
}
