package db

import (
	"context"
	"time"

	"github.com/kailas-cloud/seekr/internal/db/query"
)

// Observer receives the outcome of every engine call.
type Observer interface {
	ObserveOp(driver, op string, elapsed time.Duration, err error)
}

// Instrumented decorates an Engine, reporting each call to an Observer.
type Instrumented struct {
	Engine
	obs Observer
}

// Instrument wraps e so that every call is reported to obs.
func Instrument(e Engine, obs Observer) *Instrumented {
	return &Instrumented{Engine: e, obs: obs}
}

func (i *Instrumented) observe(op string, start time.Time, err error) {
	i.obs.ObserveOp(i.Driver(), op, time.Since(start), err)
}

// Ping implements Pinger.
func (i *Instrumented) Ping(ctx context.Context) error {
	start := time.Now()
	err := i.Engine.Ping(ctx)
	i.observe(OpHealth, start, err)
	return err
}

// CreateIndex implements IndexManager.
func (i *Instrumented) CreateIndex(ctx context.Context, def *IndexDefinition) error {
	start := time.Now()
	err := i.Engine.CreateIndex(ctx, def)
	i.observe(OpCreateIndex, start, err)
	return err
}

// IndexExists implements IndexManager.
func (i *Instrumented) IndexExists(ctx context.Context, name string) (bool, error) {
	start := time.Now()
	ok, err := i.Engine.IndexExists(ctx, name)
	i.observe(OpIndexExists, start, err)
	return ok, err
}

// DeleteIndex implements IndexManager.
func (i *Instrumented) DeleteIndex(ctx context.Context, name string) error {
	start := time.Now()
	err := i.Engine.DeleteIndex(ctx, name)
	i.observe(OpDeleteIndex, start, err)
	return err
}

// IndexDocument implements DocumentStore.
func (i *Instrumented) IndexDocument(ctx context.Context, index, id string, source []byte, refresh bool) error {
	start := time.Now()
	err := i.Engine.IndexDocument(ctx, index, id, source, refresh)
	i.observe(OpIndex, start, err)
	return err
}

// GetDocument implements DocumentStore.
func (i *Instrumented) GetDocument(ctx context.Context, index, id string) ([]byte, error) {
	start := time.Now()
	src, err := i.Engine.GetDocument(ctx, index, id)
	i.observe(OpGet, start, err)
	return src, err
}

// UpdateDocument implements DocumentStore.
func (i *Instrumented) UpdateDocument(ctx context.Context, index, id string, partial []byte, refresh bool) error {
	start := time.Now()
	err := i.Engine.UpdateDocument(ctx, index, id, partial, refresh)
	i.observe(OpUpdate, start, err)
	return err
}

// DeleteDocument implements DocumentStore.
func (i *Instrumented) DeleteDocument(ctx context.Context, index, id string, refresh bool) error {
	start := time.Now()
	err := i.Engine.DeleteDocument(ctx, index, id, refresh)
	i.observe(OpDelete, start, err)
	return err
}

// Search implements Searcher.
func (i *Instrumented) Search(ctx context.Context, index string, req *query.Request) (*SearchResult, error) {
	start := time.Now()
	res, err := i.Engine.Search(ctx, index, req)
	i.observe(OpSearch, start, err)
	return res, err
}
