package seekr

import "github.com/kailas-cloud/seekr/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound          = domain.ErrNotFound
	ErrValidation        = domain.ErrValidation
	ErrEngineUnavailable = domain.ErrEngineUnavailable
	ErrEngineRejected    = domain.ErrEngineRejected
	ErrProfilesDisabled  = domain.ErrProfilesDisabled
)
