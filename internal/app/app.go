// Package app wires configuration into engines, repositories and services.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/seekr/internal/config"
	"github.com/kailas-cloud/seekr/internal/db"
	dbBleve "github.com/kailas-cloud/seekr/internal/db/bleve"
	dbElastic "github.com/kailas-cloud/seekr/internal/db/elasticsearch"
	dbOpenSearch "github.com/kailas-cloud/seekr/internal/db/opensearch"
	dbRedis "github.com/kailas-cloud/seekr/internal/db/redis"
	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/metrics"
	documentrepo "github.com/kailas-cloud/seekr/internal/repository/document"
	interactionrepo "github.com/kailas-cloud/seekr/internal/repository/interaction"
	"github.com/kailas-cloud/seekr/internal/repository/schema"
	searchrepo "github.com/kailas-cloud/seekr/internal/repository/search"
	documentuc "github.com/kailas-cloud/seekr/internal/usecase/document"
	healthuc "github.com/kailas-cloud/seekr/internal/usecase/health"
	interactionuc "github.com/kailas-cloud/seekr/internal/usecase/interaction"
	searchuc "github.com/kailas-cloud/seekr/internal/usecase/search"
)

// App holds the wired services.
type App struct {
	Engine       db.Engine
	Schema       *schema.Manager
	Documents    *documentuc.Service
	Search       *searchuc.Service
	Interactions *interactionuc.Service
	Health       *healthuc.Service

	redis *dbRedis.Store
}

// OpenEngine creates the configured search engine driver, instrumented with engine metrics.
func OpenEngine(cfg config.EngineConfig) (db.Engine, error) {
	timeout := time.Duration(cfg.RequestTimeoutSec) * time.Second

	var (
		e   db.Engine
		err error
	)
	switch cfg.Driver {
	case config.DriverOpenSearch:
		e, err = dbOpenSearch.NewStore(dbOpenSearch.Config{
			Addrs:              cfg.Addrs,
			Username:           cfg.Username,
			Password:           cfg.Password,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
			RequestTimeout:     timeout,
		})
	case config.DriverElasticsearch:
		e, err = dbElastic.NewStore(dbElastic.Config{
			Addrs:              cfg.Addrs,
			Username:           cfg.Username,
			Password:           cfg.Password,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
			RequestTimeout:     timeout,
		})
	case config.DriverBleve:
		e, err = dbBleve.NewStore(dbBleve.Config{Path: cfg.BlevePath})
	default:
		return nil, fmt.Errorf("unknown engine driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s engine: %w", cfg.Driver, err)
	}
	return db.Instrument(e, metrics.EngineObserver{}), nil
}

// New connects to the engine (and Redis, when configured) and builds the services.
// The index is not created; call Schema.EnsureIndex.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	engine, err := OpenEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}
	readiness := time.Duration(cfg.Engine.ReadinessTimeout) * time.Second
	if err := engine.WaitForReady(ctx, readiness); err != nil {
		_ = engine.Close()
		return nil, fmt.Errorf("engine not ready: %w", err)
	}
	logger.Info("Connected to search engine",
		zap.String("driver", cfg.Engine.Driver),
		zap.Strings("addrs", cfg.Engine.Addrs),
	)

	def, err := schema.Definition(cfg.Engine.Index, schema.Options{
		Shards:   cfg.Engine.Shards,
		Replicas: cfg.Engine.Replicas,
	})
	if err != nil {
		_ = engine.Close()
		return nil, fmt.Errorf("index definition: %w", err)
	}

	docRepo := documentrepo.New(engine, cfg.Engine.Index).WithRefresh(cfg.Engine.RefreshOnWrite)

	a := &App{
		Engine: engine,
		Schema: schema.New(engine, def),
		Documents: documentuc.New(docRepo).
			WithBulkConcurrency(cfg.Engine.BulkConcurrency),
		Search: searchuc.New(searchrepo.New(docRepo), docRepo).
			WithLimits(request.Limits{
				DefaultPageSize: cfg.Search.DefaultPageSize,
				MaxPageSize:     cfg.Search.MaxPageSize,
				MaxQueryLength:  cfg.Search.MaxQueryLength,
				MaxResultWindow: cfg.Search.MaxResultWindow,
			}).
			WithSuggestSize(cfg.Search.SuggestSize).
			WithRecommendLimit(cfg.Search.RecommendLimit).
			WithAggregationFetchLimit(cfg.Search.AggregationFetchLimit),
		Interactions: interactionuc.New(docRepo).WithCounter(metrics.InteractionCounter{}),
		Health:       healthuc.New(docRepo, healthuc.EngineDisplayName(cfg.Engine.Driver)),
	}

	if !cfg.Redis.Enabled() {
		logger.Info("Interaction profiles disabled (no redis.addrs)")
		return a, nil
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Redis.Addrs,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
	})
	if err != nil {
		_ = engine.Close()
		return nil, fmt.Errorf("create redis store: %w", err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		_ = engine.Close()
		return nil, fmt.Errorf("redis not ready: %w", err)
	}
	logger.Info("Connected to redis", zap.Strings("addrs", cfg.Redis.Addrs))

	profiles := interactionrepo.New(store, cfg.Redis.KeyPrefix, time.Duration(cfg.Redis.ProfileTTLHours)*time.Hour)
	a.redis = store
	a.Search.WithProfiles(profiles)
	a.Interactions.WithProfiles(profiles)
	a.Health.WithRedis(store)
	return a, nil
}

// Close releases engine and Redis connections.
func (a *App) Close() error {
	if a.redis != nil {
		a.redis.Close()
	}
	return a.Engine.Close()
}
