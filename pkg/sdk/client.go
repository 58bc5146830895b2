package seekr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/seekr/internal/app"
	dombatch "github.com/kailas-cloud/seekr/internal/domain/batch"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/document/patch"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/domain/search/result"
	documentuc "github.com/kailas-cloud/seekr/internal/usecase/document"
	healthuc "github.com/kailas-cloud/seekr/internal/usecase/health"
)

// Internal interfaces for substitution in tests.
type documentUseCase interface {
	Create(ctx context.Context, in documentuc.CreateInput) (domdoc.Document, error)
	Update(ctx context.Context, id string, f patch.Fields) (domdoc.Document, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domdoc.Document, error)
	BulkCreate(ctx context.Context, inputs []documentuc.CreateInput) []dombatch.Result
}

type searchUseCase interface {
	Search(ctx context.Context, opts ...request.Option) (result.Result, error)
	ByCategory(ctx context.Context, category string, page, size int) (result.Result, error)
	ByTags(ctx context.Context, tags []string, page, size int) (result.Result, error)
	Suggest(ctx context.Context, prefix string) ([]string, error)
	Recommend(ctx context.Context, id string, limit int) ([]domdoc.Document, error)
	RecommendForUser(ctx context.Context, userID string, limit int) ([]domdoc.Document, error)
	Categories(ctx context.Context) []string
	Tags(ctx context.Context) []string
}

type interactionUseCase interface {
	Record(ctx context.Context, userID, docID string, kind interaction.Kind) (domdoc.Document, error)
	Reset(ctx context.Context, userID string) error
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the seekr SDK entry point.
type Client struct {
	closer         func() error
	docSvc         documentUseCase
	searchSvc      searchUseCase
	interactionSvc interactionUseCase
	healthSvc      healthUseCase
	obs            *observer
}

// New connects to the configured engine and creates the index unless
// WithoutIndexSetup is given. The context bounds the readiness wait.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cc := &clientConfig{}
	for _, o := range opts {
		o.apply(cc)
	}
	if cc.engine.Driver == "" {
		return nil, errors.New("seekr: engine required (use WithOpenSearch, WithElasticsearch or WithBleve)")
	}

	obs, err := newObserver(cc.logger, cc.metricsReg)
	if err != nil {
		return nil, err
	}

	cfg := cc.toConfig()
	a, err := app.New(ctx, &cfg, zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("seekr: %w", err)
	}
	if !cc.skipSetup {
		if err := a.Schema.EnsureIndex(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("seekr: ensure index: %w", err)
		}
	}

	return &Client{
		closer:         a.Close,
		docSvc:         a.Documents,
		searchSvc:      a.Search,
		interactionSvc: a.Interactions,
		healthSvc:      a.Health,
		obs:            obs,
	}, nil
}

// Close releases all connections.
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// Products returns the product write/read service.
func (c *Client) Products() *ProductService {
	return &ProductService{svc: c.docSvc, obs: c.obs}
}

// Search returns the query service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc, obs: c.obs}
}

// Interactions returns the interaction tracking service.
func (c *Client) Interactions() *InteractionService {
	return &InteractionService{svc: c.interactionSvc, obs: c.obs}
}

// Health checks the engine and, when configured, Redis.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)
	var err error
	if !report.Up() {
		err = ErrEngineUnavailable
	}
	c.obs.observe("health", start, err)

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:  string(report.Status),
		Message: report.Message,
		Checks:  checks,
	}
}

func fromInternalDocument(d *domdoc.Document) Product {
	c := d.Counters()
	return Product{
		ID:              d.ID(),
		Title:           d.Title(),
		Content:         d.Content(),
		Category:        d.Category(),
		Brand:           d.Brand(),
		Color:           d.Color(),
		Size:            d.Size(),
		Condition:       d.Condition(),
		Tags:            d.Tags(),
		Price:           d.Price(),
		Rating:          d.Rating(),
		Popularity:      d.Popularity(),
		Boosted:         d.Boosted(),
		Views:           c.Views,
		Clicks:          c.Clicks,
		Likes:           c.Likes,
		Saves:           c.Saves,
		CreatedAt:       d.CreatedAt(),
		UpdatedAt:       d.UpdatedAt(),
		LastInteraction: d.LastInteraction(),
		FormattedPrice:  d.FormattedPrice(),
		FormattedRating: d.FormattedRating(),
		Excerpt:         d.Excerpt(),
	}
}

func fromInternalDocuments(docs []domdoc.Document) []Product {
	out := make([]Product, len(docs))
	for i := range docs {
		out[i] = fromInternalDocument(&docs[i])
	}
	return out
}
