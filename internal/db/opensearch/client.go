package opensearch

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	opensearch "github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/kailas-cloud/seekr/internal/db"
	"github.com/kailas-cloud/seekr/internal/db/wire"
)

// Compile-time check: Store implements db.Engine.
var _ db.Engine = (*Store)(nil)

// DriverName identifies this driver in logs and metrics.
const DriverName = "opensearch"

// Config holds connection parameters for an OpenSearch cluster.
type Config struct {
	Addrs              []string
	Username           string
	Password           string
	InsecureSkipVerify bool
	RequestTimeout     time.Duration
	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
}

// Store implements db.Engine via opensearch-go.
type Store struct {
	client    *opensearch.Client
	transport http.RoundTripper
	timeout   time.Duration
}

// NewStore creates an OpenSearch store. Retries are disabled: callers own retry policy.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	transport := cfg.Transport
	if transport == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // dev-only toggle, rejected in prod config
			MinVersion:         tls.VersionTLS12,
		}
		transport = t
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:    cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		Transport:    transport,
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Store{client: client, transport: transport, timeout: timeout}, nil
}

// Driver returns the driver name.
func (s *Store) Driver() string { return DriverName }

// Ping probes cluster health.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := opensearchapi.ClusterHealthRequest{}.Do(ctx, s.client)
	if err != nil {
		return db.Unavailable(db.OpHealth, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return wire.Classify(db.OpHealth, res.StatusCode, res.Body)
	}
	return nil
}

// Close releases idle connections.
func (s *Store) Close() error {
	if t, ok := s.transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
	return nil
}

// WaitForReady polls Ping until the cluster responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := s.Ping(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for opensearch: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func refreshParam(refresh bool) string {
	if refresh {
		return "true"
	}
	return ""
}
