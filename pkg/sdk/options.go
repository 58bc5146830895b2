package seekr

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/seekr/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	engine    config.EngineConfig
	redis     config.RedisConfig
	search    config.SearchConfig
	skipSetup bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func (c *clientConfig) toConfig() config.Config {
	cfg := config.Config{Engine: c.engine, Redis: c.redis, Search: c.search}
	cfg.ApplyDefaults()
	return cfg
}

// WithOpenSearch connects to an OpenSearch cluster.
func WithOpenSearch(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.engine.Driver = config.DriverOpenSearch
		c.engine.Addrs = addrs
	})
}

// WithElasticsearch connects to an Elasticsearch cluster.
func WithElasticsearch(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.engine.Driver = config.DriverElasticsearch
		c.engine.Addrs = addrs
	})
}

// WithBleve uses an embedded bleve index stored under dir. Empty dir keeps it in memory.
func WithBleve(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.engine.Driver = config.DriverBleve
		c.engine.BlevePath = dir
	})
}

// WithBasicAuth sets cluster credentials.
func WithBasicAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.engine.Username = username
		c.engine.Password = password
	})
}

// WithInsecureTLS disables certificate verification. Development clusters only.
func WithInsecureTLS() Option {
	return optionFunc(func(c *clientConfig) {
		c.engine.InsecureSkipVerify = true
	})
}

// WithIndex overrides the index name. Default: products.
func WithIndex(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.engine.Index = name
	})
}

// WithRefreshOnWrite makes writes visible to search before they return.
func WithRefreshOnWrite() Option {
	return optionFunc(func(c *clientConfig) {
		c.engine.RefreshOnWrite = true
	})
}

// WithRedis enables interaction profiles backed by Redis.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.redis.Addrs = []string{addr}
		c.redis.Password = password
	})
}

// WithPageSize sets the default and maximum search page sizes.
// Defaults: 20 and 100.
func WithPageSize(def, maxSize int) Option {
	return optionFunc(func(c *clientConfig) {
		c.search.DefaultPageSize = def
		c.search.MaxPageSize = maxSize
	})
}

// WithoutIndexSetup skips creating the index in New.
func WithoutIndexSetup() Option {
	return optionFunc(func(c *clientConfig) {
		c.skipSetup = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
