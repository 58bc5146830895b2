package seekr

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/seekr/internal/domain/interaction"
)

// InteractionService records user actions and manages affinity profiles.
type InteractionService struct {
	svc interactionUseCase
	obs *observer
}

// Record bumps the product counter for kind and, when Redis is configured,
// the user's brand, category and color affinities. It returns the updated product.
func (s *InteractionService) Record(
	ctx context.Context, userID, productID string, kind InteractionKind,
) (_ Product, err error) {
	start := time.Now()
	defer func() { s.obs.observe("interactions.record", start, err) }()

	k, err := interaction.Parse(string(kind))
	if err != nil {
		return Product{}, err
	}
	d, err := s.svc.Record(ctx, userID, productID, k)
	if err != nil {
		return Product{}, fmt.Errorf("record %s: %w", kind, err)
	}
	return fromInternalDocument(&d), nil
}

// Reset forgets the user's affinities. Returns ErrProfilesDisabled without Redis.
func (s *InteractionService) Reset(ctx context.Context, userID string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("interactions.reset", start, err) }()

	if err = s.svc.Reset(ctx, userID); err != nil {
		return fmt.Errorf("reset profile: %w", err)
	}
	return nil
}
