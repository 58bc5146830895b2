package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Engine drivers.
const (
	DriverOpenSearch    = "opensearch"
	DriverElasticsearch = "elasticsearch"
	DriverBleve         = "bleve"
)

// Config holds the seekr configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Engine  EngineConfig  `yaml:"engine"`
	Search  SearchConfig  `yaml:"search"`
	Redis   RedisConfig   `yaml:"redis"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`

	env string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// EngineConfig holds search engine connection and index settings.
type EngineConfig struct {
	Driver             string   `yaml:"driver"` // opensearch, elasticsearch, bleve (default: opensearch)
	Addrs              []string `yaml:"addrs"`
	Username           string   `yaml:"username"`
	Password           string   `yaml:"password"`
	InsecureSkipVerify bool     `yaml:"insecure_skip_verify"`
	RequestTimeoutSec  int      `yaml:"request_timeout_sec"`
	ReadinessTimeout   int      `yaml:"readiness_timeout_sec"`
	Index              string   `yaml:"index"`
	Shards             int      `yaml:"shards"`
	Replicas           int      `yaml:"replicas"`
	RefreshOnWrite     bool     `yaml:"refresh_on_write"`
	BulkConcurrency    int      `yaml:"bulk_concurrency"`
	BlevePath          string   `yaml:"bleve_path"` // empty = in-memory
}

// SearchConfig holds pagination and listing limits.
type SearchConfig struct {
	DefaultPageSize       int `yaml:"default_page_size"`
	MaxPageSize           int `yaml:"max_page_size"`
	AggregationFetchLimit int `yaml:"aggregation_fetch_limit"`
	SuggestSize           int `yaml:"suggest_size"`
	RecommendLimit        int `yaml:"recommend_limit"`
	MaxQueryLength        int `yaml:"max_query_length"`
	MaxResultWindow       int `yaml:"max_result_window"`
}

// RedisConfig holds the interaction profile store settings. Empty addrs disables profiles.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ProfileTTLHours  int      `yaml:"profile_ttl_hours"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Enabled reports whether a Redis profile store is configured.
func (r RedisConfig) Enabled() bool { return len(r.Addrs) > 0 }

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(env, findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(env, configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.env = env

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadDotEnv loads variables from an .env file into the process environment.
// A missing file is not an error; variables already set are not overridden.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// Env returns the environment the config was loaded for.
func (c *Config) Env() string { return c.env }

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	c.Engine.Addrs = compact(c.Engine.Addrs)
	c.Redis.Addrs = compact(c.Redis.Addrs)

	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Engine.Driver == "" {
		c.Engine.Driver = DriverOpenSearch
	}
	if c.Engine.RequestTimeoutSec <= 0 {
		c.Engine.RequestTimeoutSec = 10
	}
	if c.Engine.ReadinessTimeout <= 0 {
		c.Engine.ReadinessTimeout = 30
	}
	if c.Engine.Index == "" {
		c.Engine.Index = "products"
	}
	if c.Engine.Shards <= 0 {
		c.Engine.Shards = 1
	}
	if c.Engine.BulkConcurrency <= 0 {
		c.Engine.BulkConcurrency = 4
	}
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = 20
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 100
	}
	if c.Search.AggregationFetchLimit <= 0 {
		c.Search.AggregationFetchLimit = 1000
	}
	if c.Search.SuggestSize <= 0 {
		c.Search.SuggestSize = 5
	}
	if c.Search.RecommendLimit <= 0 {
		c.Search.RecommendLimit = 5
	}
	if c.Search.MaxQueryLength <= 0 {
		c.Search.MaxQueryLength = 512
	}
	if c.Search.MaxResultWindow <= 0 {
		c.Search.MaxResultWindow = 10000
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "seekr:"
	}
	if c.Redis.ProfileTTLHours <= 0 {
		c.Redis.ProfileTTLHours = 720
	}
	if c.Redis.ReadinessTimeout <= 0 {
		c.Redis.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Engine.Driver {
	case DriverOpenSearch, DriverElasticsearch:
		if len(c.Engine.Addrs) == 0 {
			return fmt.Errorf("engine.addrs is required for driver %q", c.Engine.Driver)
		}
	case DriverBleve:
		// embedded, no addrs
	default:
		return fmt.Errorf(
			"engine.driver must be %q, %q or %q, got %q",
			DriverOpenSearch, DriverElasticsearch, DriverBleve, c.Engine.Driver,
		)
	}
	if c.Engine.Replicas < 0 {
		return fmt.Errorf("engine.replicas must not be negative, got %d", c.Engine.Replicas)
	}
	if c.env == "prod" && c.Engine.InsecureSkipVerify {
		return fmt.Errorf("engine.insecure_skip_verify is not allowed in prod")
	}
	if c.Search.MaxPageSize > c.Search.MaxResultWindow {
		return fmt.Errorf(
			"search.max_page_size (%d) exceeds search.max_result_window (%d)",
			c.Search.MaxPageSize, c.Search.MaxResultWindow,
		)
	}
	if c.Search.DefaultPageSize > c.Search.MaxPageSize {
		return fmt.Errorf(
			"search.default_page_size (%d) exceeds search.max_page_size (%d)",
			c.Search.DefaultPageSize, c.Search.MaxPageSize,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

// compact drops blank entries left by unset ${VAR} substitutions.
func compact(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
