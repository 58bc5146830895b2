package document

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/seekr/internal/db"
	"github.com/kailas-cloud/seekr/internal/db/query"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/document/patch"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
	"github.com/kailas-cloud/seekr/internal/logger"
	"github.com/kailas-cloud/seekr/internal/repository/engineerr"
	"github.com/kailas-cloud/seekr/internal/repository/schema"
)

// engine is the consumer interface for documents (ISP).
type engine interface {
	Ping(ctx context.Context) error
	IndexDocument(ctx context.Context, index, id string, source []byte, refresh bool) error
	GetDocument(ctx context.Context, index, id string) ([]byte, error)
	UpdateDocument(ctx context.Context, index, id string, partial []byte, refresh bool) error
	DeleteDocument(ctx context.Context, index, id string, refresh bool) error
	Search(ctx context.Context, index string, req *query.Request) (*db.SearchResult, error)
}

// Repo stores products in one named index.
type Repo struct {
	engine  engine
	index   string
	refresh bool
	now     func() time.Time
}

// New creates a document repository over index.
func New(e engine, index string) *Repo {
	return &Repo{engine: e, index: index, now: time.Now}
}

// WithRefresh makes writes visible to search before they return.
func (r *Repo) WithRefresh(on bool) *Repo {
	r.refresh = on
	return r
}

// WithClock overrides the time source used for updated_at and last_interaction.
func (r *Repo) WithClock(now func() time.Time) *Repo {
	r.now = now
	return r
}

// Index returns the index name.
func (r *Repo) Index() string { return r.index }

// Put creates or replaces a document.
func (r *Repo) Put(ctx context.Context, doc *domdoc.Document) error {
	data, err := json.Marshal(toSource(doc))
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", doc.ID(), err)
	}
	if err := r.engine.IndexDocument(ctx, r.index, doc.ID(), data, r.refresh); err != nil {
		return engineerr.Wrap("index document "+doc.ID(), err)
	}
	return nil
}

// Get returns a document by ID, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domdoc.Document, error) {
	raw, err := r.engine.GetDocument(ctx, r.index, id)
	if err != nil {
		return domdoc.Document{}, engineerr.Wrap("get document "+id, err)
	}
	return Decode(id, raw)
}

// Patch merges p into the stored document. The existence check and the write
// are separate round trips; a concurrent delete between them surfaces as ErrNotFound.
// updated_at never moves backwards.
func (r *Repo) Patch(ctx context.Context, id string, p patch.Patch) error {
	current, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	// the merged document must still be valid as a whole
	if err := p.Apply(current.Attributes()).Validate(); err != nil {
		return err
	}

	updatedAt := r.now().UTC()
	if prev := current.UpdatedAt(); prev.After(updatedAt) {
		updatedAt = prev
	}

	data, err := json.Marshal(patchSource(p.Fields(), updatedAt))
	if err != nil {
		return fmt.Errorf("marshal patch %s: %w", id, err)
	}
	if err := r.engine.UpdateDocument(ctx, r.index, id, data, r.refresh); err != nil {
		return engineerr.Wrap("update document "+id, err)
	}
	return nil
}

// Remove deletes a document, or returns domain.ErrNotFound.
func (r *Repo) Remove(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	if err := r.engine.DeleteDocument(ctx, r.index, id, r.refresh); err != nil {
		return engineerr.Wrap("delete document "+id, err)
	}
	return nil
}

// RecordInteraction increments the counter for kind and stamps last_interaction.
func (r *Repo) RecordInteraction(ctx context.Context, id string, kind interaction.Kind) (domdoc.Document, error) {
	current, err := r.Get(ctx, id)
	if err != nil {
		return domdoc.Document{}, err
	}

	c := current.Counters()
	var count int64
	switch kind {
	case interaction.View:
		c.Views++
		count = c.Views
	case interaction.Click:
		c.Clicks++
		count = c.Clicks
	case interaction.Like:
		c.Likes++
		count = c.Likes
	case interaction.Save:
		c.Saves++
		count = c.Saves
	default:
		return domdoc.Document{}, fmt.Errorf("unknown interaction kind %q", kind)
	}
	at := r.now().UTC()

	data, err := json.Marshal(map[string]any{
		kind.CounterField():         count,
		schema.FieldLastInteraction: at,
	})
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("marshal interaction %s: %w", id, err)
	}
	if err := r.engine.UpdateDocument(ctx, r.index, id, data, r.refresh); err != nil {
		return domdoc.Document{}, engineerr.Wrap("record interaction "+id, err)
	}

	return domdoc.Reconstruct(id, current.Attributes(), c, current.CreatedAt(), current.UpdatedAt(), &at), nil
}

// Execute runs a built query against the index.
func (r *Repo) Execute(ctx context.Context, req *query.Request) (*db.SearchResult, error) {
	res, err := r.engine.Search(ctx, r.index, req)
	if err != nil {
		return nil, engineerr.Wrap("search "+r.index, err)
	}
	return res, nil
}

// Health probes the engine. It never fails; problems are logged.
func (r *Repo) Health(ctx context.Context) bool {
	if err := r.engine.Ping(ctx); err != nil {
		logger.ForOp(ctx, "health", "").Warn("engine health probe failed", zap.Error(err))
		return false
	}
	return true
}
