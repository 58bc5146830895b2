// Package engineerr translates db-layer errors into domain errors.
package engineerr

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/seekr/internal/db"
	"github.com/kailas-cloud/seekr/internal/domain"
)

// Wrap annotates err with op and the matching domain sentinel.
// Unclassified errors are annotated but keep their identity.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case db.IsNotFound(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrNotFound, err)
	case errors.Is(err, db.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrEngineUnavailable, err)
	case errors.Is(err, db.ErrRejected):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrEngineRejected, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
