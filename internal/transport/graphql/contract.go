package graphql

import (
	"context"

	dombatch "github.com/kailas-cloud/seekr/internal/domain/batch"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/document/patch"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/domain/search/result"
	documentuc "github.com/kailas-cloud/seekr/internal/usecase/document"
	healthuc "github.com/kailas-cloud/seekr/internal/usecase/health"
)

// Documents handles document writes and point reads.
type Documents interface {
	Create(ctx context.Context, in documentuc.CreateInput) (domdoc.Document, error)
	Update(ctx context.Context, id string, f patch.Fields) (domdoc.Document, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domdoc.Document, error)
	BulkCreate(ctx context.Context, inputs []documentuc.CreateInput) []dombatch.Result
}

// Search serves read queries.
type Search interface {
	Search(ctx context.Context, opts ...request.Option) (result.Result, error)
	ByCategory(ctx context.Context, category string, page, size int) (result.Result, error)
	ByTags(ctx context.Context, tags []string, page, size int) (result.Result, error)
	Suggest(ctx context.Context, prefix string) ([]string, error)
	Recommend(ctx context.Context, id string, limit int) ([]domdoc.Document, error)
	RecommendForUser(ctx context.Context, userID string, limit int) ([]domdoc.Document, error)
	Categories(ctx context.Context) []string
	Tags(ctx context.Context) []string
}

// Interactions records user behavior.
type Interactions interface {
	Record(ctx context.Context, userID, docID string, kind interaction.Kind) (domdoc.Document, error)
	Reset(ctx context.Context, userID string) error
}

// Health reports component health.
type Health interface {
	Check(ctx context.Context) healthuc.Report
}

// Services groups the use cases the schema resolves against.
type Services struct {
	Documents    Documents
	Search       Search
	Interactions Interactions
	Health       Health
}
