// Package interaction keeps per-user affinity profiles in Redis sorted sets.
package interaction

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/seekr/internal/db/redis"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
)

// Profile dimensions, used as key suffixes.
const (
	dimBrand    = "brand"
	dimCategory = "category"
	dimColor    = "color"
)

// store is the consumer interface for profiles (ISP).
type store interface {
	ZIncrBy(ctx context.Context, key, member string, by float64, ttl time.Duration) error
	ZTop(ctx context.Context, key string, n int) ([]redis.ScoredMember, error)
	Del(ctx context.Context, keys ...string) error
}

// Repo reads and updates user profiles.
type Repo struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates a profile repository. Keys live under prefix and expire ttl after the last update.
func New(s store, prefix string, ttl time.Duration) *Repo {
	return &Repo{store: s, prefix: prefix, ttl: ttl}
}

// Bump adds the interaction weight of kind to the user's affinity for the
// document's brand, category and color. Blank attributes are skipped.
func (r *Repo) Bump(ctx context.Context, userID string, doc *domdoc.Document, kind interaction.Kind) error {
	w := kind.Weight()
	for _, d := range []struct{ dim, value string }{
		{dimBrand, doc.Brand()},
		{dimCategory, doc.Category()},
		{dimColor, doc.Color()},
	} {
		if d.value == "" {
			continue
		}
		if err := r.store.ZIncrBy(ctx, r.key(userID, d.dim), d.value, w, r.ttl); err != nil {
			return fmt.Errorf("bump %s affinity for %s: %w", d.dim, userID, err)
		}
	}
	return nil
}

// Profile returns up to n strongest values per dimension. Unknown users get an empty profile.
func (r *Repo) Profile(ctx context.Context, userID string, n int) (interaction.Profile, error) {
	var p interaction.Profile
	for _, d := range []struct {
		dim string
		dst *[]string
	}{
		{dimBrand, &p.Brands},
		{dimCategory, &p.Categories},
		{dimColor, &p.Colors},
	} {
		top, err := r.store.ZTop(ctx, r.key(userID, d.dim), n)
		if err != nil {
			return interaction.Profile{}, fmt.Errorf("read %s affinity for %s: %w", d.dim, userID, err)
		}
		for _, m := range top {
			*d.dst = append(*d.dst, m.Member)
		}
	}
	return p, nil
}

// Reset forgets everything recorded for the user.
func (r *Repo) Reset(ctx context.Context, userID string) error {
	keys := []string{r.key(userID, dimBrand), r.key(userID, dimCategory), r.key(userID, dimColor)}
	if err := r.store.Del(ctx, keys...); err != nil {
		return fmt.Errorf("reset profile %s: %w", userID, err)
	}
	return nil
}

func (r *Repo) key(userID, dim string) string {
	return r.prefix + "profile:" + userID + ":" + dim
}
