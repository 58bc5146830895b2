package search

import (
	"context"

	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/domain/search/result"
)

// Searcher runs read queries against the document index.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (result.Result, error)
	ByCategory(ctx context.Context, category string, opts ...request.Option) (result.Result, error)
	ByTags(ctx context.Context, tags []string, opts ...request.Option) (result.Result, error)
	Suggest(ctx context.Context, prefix string, size int) ([]string, error)
	Similar(ctx context.Context, doc *domdoc.Document, limit int) ([]domdoc.Document, error)
	ForProfile(ctx context.Context, p interaction.Profile, size int) ([]domdoc.Document, error)
	Popular(ctx context.Context, size int) ([]domdoc.Document, error)
	Categories(ctx context.Context, fetchLimit int) ([]string, error)
	Tags(ctx context.Context, fetchLimit int) ([]string, error)
}

// DocumentReader loads the source document for recommendations.
type DocumentReader interface {
	Get(ctx context.Context, id string) (domdoc.Document, error)
}

// ProfileReader loads a user's top affinities.
type ProfileReader interface {
	Profile(ctx context.Context, userID string, n int) (interaction.Profile, error)
}
