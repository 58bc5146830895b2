package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kailas-cloud/seekr/internal/db/query"
)

// Engine is the search engine facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Engine interface {
	Pinger
	IndexManager
	DocumentStore
	Searcher
	Driver() string
	Close() error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger probes cluster health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	// CreateIndex returns ErrIndexExists when the index is already present.
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	// DeleteIndex returns ErrIndexNotFound when the index is absent.
	DeleteIndex(ctx context.Context, name string) error
}

// DocumentStore provides single-document operations on one index.
// Missing documents are reported as ErrDocumentNotFound.
type DocumentStore interface {
	IndexDocument(ctx context.Context, index, id string, source []byte, refresh bool) error
	GetDocument(ctx context.Context, index, id string) ([]byte, error)
	UpdateDocument(ctx context.Context, index, id string, partial []byte, refresh bool) error
	DeleteDocument(ctx context.Context, index, id string, refresh bool) error
}

// Searcher runs structured queries.
type Searcher interface {
	Search(ctx context.Context, index string, req *query.Request) (*SearchResult, error)
}

// SearchResult is the raw output of a search call.
type SearchResult struct {
	Took        int64 // engine-reported milliseconds
	Total       int
	Hits        []Hit
	Suggestions []string
}

// Hit is a single matching document as returned by the engine.
type Hit struct {
	ID     string
	Score  float64
	Source json.RawMessage
}
