// Package bleve is an embedded engine driver backed by a bleve index per
// index name. It serves the same mapping and query representation as the
// HTTP drivers, which makes it suitable for local runs and tests.
package bleve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/kailas-cloud/seekr/internal/db"
)

// Compile-time check: Store implements db.Engine.
var _ db.Engine = (*Store)(nil)

// DriverName identifies this driver in logs and metrics.
const DriverName = "bleve"

// Config holds embedded index settings.
type Config struct {
	// Path is the directory holding one bleve index per name. Empty keeps indices in memory.
	Path string
}

type handle struct {
	idx bleve.Index
	// suggest maps completion field paths to the source field holding the suggestion text.
	suggest map[string]string
}

// Store implements db.Engine on top of bleve.
type Store struct {
	path string

	mu      sync.RWMutex
	indices map[string]*handle
	closed  bool
}

// NewStore creates an embedded store.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Path != "" {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create index dir: %w", err)
		}
	}
	return &Store{path: cfg.Path, indices: make(map[string]*handle)}, nil
}

// Driver returns the driver name.
func (s *Store) Driver() string { return DriverName }

// Ping fails only after Close.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return db.Unavailable(db.OpHealth, errors.New("store is closed"))
	}
	return nil
}

// WaitForReady returns immediately; the embedded store has no startup phase.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// Close closes every open index.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for name, h := range s.indices {
		if err := h.idx.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
	}
	s.indices = make(map[string]*handle)
	s.closed = true
	return errors.Join(errs...)
}

// CreateIndex creates a bleve index from the definition.
func (s *Store) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("invalid index definition: %w", err)
	}
	m, err := buildMapping(def)
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Reason: err.Error(), Err: db.ErrRejected}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indices[def.Name]; ok {
		return &db.Error{Op: db.OpCreateIndex, Err: db.ErrIndexExists}
	}

	var idx bleve.Index
	if s.path == "" {
		idx, err = bleve.NewMemOnly(m)
	} else {
		idx, err = bleve.New(s.indexPath(def.Name), m)
	}
	if errors.Is(err, bleve.ErrorIndexPathExists) {
		return &db.Error{Op: db.OpCreateIndex, Err: db.ErrIndexExists}
	}
	if err != nil {
		return db.Unavailable(db.OpCreateIndex, err)
	}

	s.indices[def.Name] = &handle{idx: idx, suggest: suggestSources(m)}
	return nil
}

// IndexExists reports whether the index is open or present on disk.
func (s *Store) IndexExists(_ context.Context, name string) (bool, error) {
	_, err := s.open(name, db.OpIndexExists)
	if errors.Is(err, db.ErrIndexNotFound) {
		return false, nil
	}
	return err == nil, err
}

// DeleteIndex closes and removes an index.
func (s *Store) DeleteIndex(_ context.Context, name string) error {
	h, err := s.open(name, db.OpDeleteIndex)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.indices, name)
	if err := h.idx.Close(); err != nil {
		return db.Unavailable(db.OpDeleteIndex, err)
	}
	if s.path != "" {
		if err := os.RemoveAll(s.indexPath(name)); err != nil {
			return db.Unavailable(db.OpDeleteIndex, err)
		}
	}
	return nil
}

// open returns the named index, opening it from disk on first use.
func (s *Store) open(name, op string) (*handle, error) {
	s.mu.RLock()
	h, ok := s.indices[name]
	closed := s.closed
	s.mu.RUnlock()

	if closed {
		return nil, db.Unavailable(op, errors.New("store is closed"))
	}
	if ok {
		return h, nil
	}
	if s.path == "" || !db.IsValidIndexName(name) {
		return nil, &db.Error{Op: op, Reason: "no such index [" + name + "]", Err: db.ErrIndexNotFound}
	}
	if _, err := os.Stat(s.indexPath(name)); err != nil {
		return nil, &db.Error{Op: op, Reason: "no such index [" + name + "]", Err: db.ErrIndexNotFound}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.indices[name]; ok {
		return h, nil
	}
	idx, err := bleve.Open(s.indexPath(name))
	if err != nil {
		return nil, db.Unavailable(op, err)
	}
	h = &handle{idx: idx}
	if impl, ok := idx.Mapping().(*mapping.IndexMappingImpl); ok {
		h.suggest = suggestSources(impl)
	}
	s.indices[name] = h
	return h, nil
}

func (s *Store) indexPath(name string) string {
	return filepath.Join(s.path, name+".bleve")
}
