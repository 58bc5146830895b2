package interaction

import (
	"context"

	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
)

// DocumentRecorder bumps a document's interaction counter.
type DocumentRecorder interface {
	RecordInteraction(ctx context.Context, id string, kind interaction.Kind) (domdoc.Document, error)
}

// ProfileStore keeps per-user affinities.
type ProfileStore interface {
	Bump(ctx context.Context, userID string, doc *domdoc.Document, kind interaction.Kind) error
	Reset(ctx context.Context, userID string) error
}

// Counter counts recorded interactions by kind.
type Counter interface {
	Inc(kind string)
}
