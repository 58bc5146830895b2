package search

import (
	"context"

	"github.com/kailas-cloud/seekr/internal/db"
	"github.com/kailas-cloud/seekr/internal/db/query"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/domain/search/result"
)

// executor is the consumer interface for running built queries (ISP).
type executor interface {
	Execute(ctx context.Context, req *query.Request) (*db.SearchResult, error)
}

// Repo builds queries, runs them and maps the hits.
type Repo struct {
	exec executor
}

// New creates a search repository.
func New(e executor) *Repo {
	return &Repo{exec: e}
}

// Search runs a filtered full-text search.
func (r *Repo) Search(ctx context.Context, req *request.Request) (result.Result, error) {
	res, err := r.exec.Execute(ctx, BuildSearch(req))
	if err != nil {
		return result.Result{}, err
	}
	docs, err := MapHits(res.Hits)
	if err != nil {
		return result.Result{}, err
	}
	return result.New(docs, res.Total, res.Took, req.Page(), req.PageSize()), nil
}

// ByCategory is Search restricted to one category.
func (r *Repo) ByCategory(ctx context.Context, category string, opts ...request.Option) (result.Result, error) {
	req := request.New(append(opts[:len(opts):len(opts)], request.WithCategory(category))...)
	return r.Search(ctx, &req)
}

// ByTags is Search restricted to documents carrying any of tags.
func (r *Repo) ByTags(ctx context.Context, tags []string, opts ...request.Option) (result.Result, error) {
	req := request.New(append(opts[:len(opts):len(opts)], request.WithTags(tags...))...)
	return r.Search(ctx, &req)
}

// Suggest returns up to size distinct title completions for prefix.
func (r *Repo) Suggest(ctx context.Context, prefix string, size int) ([]string, error) {
	res, err := r.exec.Execute(ctx, BuildSuggest(prefix, size))
	if err != nil {
		return nil, err
	}
	return MapSuggestions(res.Suggestions, size), nil
}

// Similar returns up to limit documents resembling doc, never doc itself.
func (r *Repo) Similar(ctx context.Context, doc *domdoc.Document, limit int) ([]domdoc.Document, error) {
	docs, err := r.run(ctx, BuildSimilar(doc, limit))
	if err != nil {
		return nil, err
	}
	out := make([]domdoc.Document, 0, limit)
	for i := range docs {
		if docs[i].ID() == doc.ID() {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, docs[i])
	}
	return out, nil
}

// ForProfile returns documents matching the user's affinities.
func (r *Repo) ForProfile(ctx context.Context, p interaction.Profile, size int) ([]domdoc.Document, error) {
	return r.run(ctx, BuildForProfile(p, size))
}

// Popular returns the most popular documents.
func (r *Repo) Popular(ctx context.Context, size int) ([]domdoc.Document, error) {
	return r.run(ctx, BuildPopular(size))
}

// Categories lists the distinct categories seen in the first fetchLimit documents.
func (r *Repo) Categories(ctx context.Context, fetchLimit int) ([]string, error) {
	return r.distinct(ctx, CategoryFacet, fetchLimit)
}

// Tags lists the distinct tags seen in the first fetchLimit documents.
func (r *Repo) Tags(ctx context.Context, fetchLimit int) ([]string, error) {
	return r.distinct(ctx, TagFacet, fetchLimit)
}

func (r *Repo) distinct(ctx context.Context, facet Facet, fetchLimit int) ([]string, error) {
	docs, err := r.run(ctx, BuildBrowse(fetchLimit))
	if err != nil {
		return nil, err
	}
	return DistinctValues(docs, facet), nil
}

func (r *Repo) run(ctx context.Context, q *query.Request) ([]domdoc.Document, error) {
	res, err := r.exec.Execute(ctx, q)
	if err != nil {
		return nil, err
	}
	return MapHits(res.Hits)
}
