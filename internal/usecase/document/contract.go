package document

import (
	"context"

	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/document/patch"
)

// Repository defines the storage contract for documents.
type Repository interface {
	Put(ctx context.Context, doc *domdoc.Document) error
	Get(ctx context.Context, id string) (domdoc.Document, error)
	Patch(ctx context.Context, id string, p patch.Patch) error
	Remove(ctx context.Context, id string) error
}
