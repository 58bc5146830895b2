//go:build integration

package app

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.uber.org/zap"

	"github.com/kailas-cloud/seekr/internal/config"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	documentuc "github.com/kailas-cloud/seekr/internal/usecase/document"
	healthuc "github.com/kailas-cloud/seekr/internal/usecase/health"
)

func startContainer(t *testing.T, pool *dockertest.Pool, opts *dockertest.RunOptions) *dockertest.Resource {
	t.Helper()
	res, err := pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("start %s: %v", opts.Repository, err)
	}
	t.Cleanup(func() {
		if err := pool.Purge(res); err != nil {
			t.Logf("purge %s: %v", opts.Repository, err)
		}
	})
	return res
}

func TestIntegration_OpenSearchWithRedis(t *testing.T) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	pool.MaxWait = 3 * time.Minute

	search := startContainer(t, pool, &dockertest.RunOptions{
		Repository: "opensearchproject/opensearch",
		Tag:        "2.11.1",
		Env: []string{
			"discovery.type=single-node",
			"DISABLE_SECURITY_PLUGIN=true",
			"OPENSEARCH_JAVA_OPTS=-Xms512m -Xmx512m",
		},
	})
	redis := startContainer(t, pool, &dockertest.RunOptions{Repository: "redis", Tag: "7-alpine"})

	engineAddr := "http://" + search.GetHostPort("9200/tcp")
	if err := pool.Retry(func() error {
		resp, err := http.Get(engineAddr) //nolint:noctx // readiness probe
		if err != nil {
			return err
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		return nil
	}); err != nil {
		t.Fatalf("opensearch not ready: %v", err)
	}

	cfg := &config.Config{
		HTTP: config.HTTPConfig{Port: 8080},
		Engine: config.EngineConfig{
			Driver:         config.DriverOpenSearch,
			Addrs:          []string{engineAddr},
			Index:          "products_it",
			RefreshOnWrite: true,
		},
		Redis: config.RedisConfig{
			Addrs:     []string{redis.GetHostPort("6379/tcp")},
			KeyPrefix: "seekr-it:",
		},
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	a, err := New(ctx, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	if err := a.Schema.EnsureIndex(ctx); err != nil {
		t.Fatalf("EnsureIndex: %v", err)
	}

	price := func(v float64) *float64 { return &v }
	inputs := []documentuc.CreateInput{
		{ID: "nike", Attributes: domdoc.Attributes{
			Title: "Nike Air Max 270", Brand: "Nike", Category: "shoes", Color: "black",
			Tags: []string{"running"}, Price: price(150), Popularity: 0.8, Boosted: true,
		}},
		{ID: "adidas", Attributes: domdoc.Attributes{
			Title: "Adidas Ultraboost 22", Brand: "Adidas", Category: "shoes", Color: "white",
			Tags: []string{"running"}, Price: price(180), Popularity: 0.7,
		}},
		{ID: "tee", Attributes: domdoc.Attributes{
			Title: "Plain Cotton Tee", Brand: "Uniqlo", Category: "apparel", Color: "black",
			Price: price(15), Popularity: 0.1,
		}},
	}
	for _, r := range a.Documents.BulkCreate(ctx, inputs) {
		if r.Err() != nil {
			t.Fatalf("bulk item %d: %v", r.Index(), r.Err())
		}
	}

	t.Run("search with typo", func(t *testing.T) {
		res, err := a.Search.Search(ctx, request.WithQuery("nikke"), request.WithMaxPrice(200))
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if res.Total() != 1 || res.Documents()[0].ID() != "nike" {
			t.Errorf("total %d, docs %v", res.Total(), res.Documents())
		}
	})

	t.Run("suggest", func(t *testing.T) {
		got, err := a.Search.Suggest(ctx, "adi")
		if err != nil {
			t.Fatalf("Suggest: %v", err)
		}
		if len(got) != 1 || got[0] != "Adidas Ultraboost 22" {
			t.Errorf("suggest = %v", got)
		}
	})

	t.Run("facets", func(t *testing.T) {
		cats := a.Search.Categories(ctx)
		if len(cats) != 2 {
			t.Errorf("categories = %v", cats)
		}
	})

	t.Run("profile recommendations", func(t *testing.T) {
		for range 3 {
			if _, err := a.Interactions.Record(ctx, "u1", "tee", interaction.Like); err != nil {
				t.Fatalf("Record: %v", err)
			}
		}
		doc, err := a.Documents.Get(ctx, "tee")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if doc.Counters().Likes != 3 {
			t.Errorf("likes = %d, want 3", doc.Counters().Likes)
		}

		recs, err := a.Search.RecommendForUser(ctx, "u1", 1)
		if err != nil {
			t.Fatalf("RecommendForUser: %v", err)
		}
		if len(recs) != 1 || recs[0].Category() != "apparel" {
			t.Errorf("recommendations = %v", recs)
		}
		if err := a.Interactions.Reset(ctx, "u1"); err != nil {
			t.Fatalf("Reset: %v", err)
		}
	})

	t.Run("health", func(t *testing.T) {
		rep := a.Health.Check(ctx)
		if rep.Status != healthuc.Healthy || rep.Checks[healthuc.CheckRedis] != healthuc.CheckOK {
			t.Errorf("health = %+v", rep)
		}
	})
}
