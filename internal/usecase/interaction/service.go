package interaction

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/seekr/internal/domain"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
	"github.com/kailas-cloud/seekr/internal/logger"
)

// MaxUserIDLength bounds user identifiers used in profile keys.
const MaxUserIDLength = 256

// Service records user interactions with documents.
type Service struct {
	docs     DocumentRecorder
	profiles ProfileStore
	counter  Counter
}

// New creates an interaction service without user profiles.
func New(docs DocumentRecorder) *Service {
	return &Service{docs: docs}
}

// WithProfiles enables per-user affinity tracking.
func (s *Service) WithProfiles(p ProfileStore) *Service {
	s.profiles = p
	return s
}

// WithCounter attaches an interaction counter.
func (s *Service) WithCounter(c Counter) *Service {
	s.counter = c
	return s
}

// Record increments the document counter for kind and bumps the user's
// affinities. A profile failure is logged and does not fail the call.
func (s *Service) Record(
	ctx context.Context, userID, docID string, kind interaction.Kind,
) (domdoc.Document, error) {
	l := logger.ForOp(ctx, "record_interaction", docID)

	if err := validateUserID(userID); err != nil {
		return domdoc.Document{}, err
	}
	if err := domdoc.ValidateID(docID); err != nil {
		return domdoc.Document{}, err
	}
	if !kind.IsValid() {
		return domdoc.Document{}, domain.NewValidation("kind", fmt.Sprintf("unknown interaction %q", kind))
	}

	doc, err := s.docs.RecordInteraction(ctx, docID, kind)
	if err != nil {
		err = fmt.Errorf("record interaction: %w", err)
		if domain.IsClientError(err) {
			l.Info("request rejected", zap.Error(err))
		} else {
			l.Error("operation failed", zap.Error(err))
		}
		return domdoc.Document{}, err
	}
	if s.counter != nil {
		s.counter.Inc(string(kind))
	}

	if s.profiles != nil {
		if err := s.profiles.Bump(ctx, userID, &doc, kind); err != nil {
			l.Warn("profile update failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return doc, nil
}

// Reset forgets a user's affinities.
func (s *Service) Reset(ctx context.Context, userID string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	if s.profiles == nil {
		return domain.ErrProfilesDisabled
	}
	if err := s.profiles.Reset(ctx, userID); err != nil {
		logger.ForOp(ctx, "reset_profile", "").Error("profile reset failed",
			zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("reset profile: %w", err)
	}
	return nil
}

func validateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.NewValidation("userId", "must not be blank")
	}
	if len(userID) > MaxUserIDLength {
		return domain.NewValidation("userId", fmt.Sprintf("too long (max %d)", MaxUserIDLength))
	}
	return nil
}
