package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/seekr/internal/domain"
	dombatch "github.com/kailas-cloud/seekr/internal/domain/batch"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/document/patch"
	"github.com/kailas-cloud/seekr/internal/logger"
)

// Batch defaults.
const (
	MaxBatchSize           = 100
	DefaultBulkConcurrency = 4
)

// CreateInput is a new document. An empty ID is replaced by a generated UUID.
type CreateInput struct {
	ID         string
	Attributes domdoc.Attributes
}

// Service handles document CRUD.
type Service struct {
	repo         Repository
	now          func() time.Time
	newID        func() string
	concurrency  int
	maxBatchSize int
}

// New creates a document service.
func New(repo Repository) *Service {
	return &Service{
		repo:         repo,
		now:          time.Now,
		newID:        uuid.NewString,
		concurrency:  DefaultBulkConcurrency,
		maxBatchSize: MaxBatchSize,
	}
}

// WithBulkConcurrency bounds how many bulk items are written at once.
func (s *Service) WithBulkConcurrency(n int) *Service {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// WithMaxBatchSize configures the maximum bulk size.
func (s *Service) WithMaxBatchSize(n int) *Service {
	if n > 0 {
		s.maxBatchSize = n
	}
	return s
}

// WithClock overrides the time source for created_at.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithIDGenerator overrides identifier generation for inputs without an ID.
func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.newID = gen
	return s
}

// Create validates, stores and re-reads a document.
func (s *Service) Create(ctx context.Context, in CreateInput) (domdoc.Document, error) {
	doc, err := s.create(ctx, in)
	if err != nil {
		logFailure(ctx, "create_document", in.ID, err)
	}
	return doc, err
}

func (s *Service) create(ctx context.Context, in CreateInput) (domdoc.Document, error) {
	id := in.ID
	if id == "" {
		id = s.newID()
	}
	doc, err := domdoc.New(id, in.Attributes, s.now())
	if err != nil {
		return domdoc.Document{}, err
	}
	if err := s.repo.Put(ctx, &doc); err != nil {
		return domdoc.Document{}, fmt.Errorf("put document: %w", err)
	}
	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("re-read document: %w", err)
	}
	return stored, nil
}

// Update applies a partial update and returns the stored result.
func (s *Service) Update(ctx context.Context, id string, f patch.Fields) (domdoc.Document, error) {
	doc, err := s.update(ctx, id, f)
	if err != nil {
		logFailure(ctx, "update_document", id, err)
	}
	return doc, err
}

func (s *Service) update(ctx context.Context, id string, f patch.Fields) (domdoc.Document, error) {
	if err := domdoc.ValidateID(id); err != nil {
		return domdoc.Document{}, err
	}
	p, err := patch.New(f)
	if err != nil {
		return domdoc.Document{}, err
	}
	if err := s.repo.Patch(ctx, id, p); err != nil {
		return domdoc.Document{}, fmt.Errorf("patch document: %w", err)
	}
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("re-read document: %w", err)
	}
	return doc, nil
}

// Delete removes a document.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.Remove(ctx, id)
	if err != nil {
		err = fmt.Errorf("remove document: %w", err)
		logFailure(ctx, "delete_document", id, err)
	}
	return err
}

// Get returns a document by ID.
func (s *Service) Get(ctx context.Context, id string) (domdoc.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		err = fmt.Errorf("get document: %w", err)
		logFailure(ctx, "get_document", id, err)
	}
	return doc, err
}

// BulkCreate creates documents with bounded concurrency. Results are in input
// order; one failing item does not stop the others. Items not started before
// ctx is done fail with the context error.
func (s *Service) BulkCreate(ctx context.Context, inputs []CreateInput) []dombatch.Result {
	results := make([]dombatch.Result, len(inputs))

	if len(inputs) > s.maxBatchSize {
		err := domain.NewValidation("inputs", fmt.Sprintf("batch size exceeds %d", s.maxBatchSize))
		for i, in := range inputs {
			results[i] = dombatch.NewError(i, in.ID, err)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = dombatch.NewError(i, in.ID, err)
				return nil
			}
			doc, err := s.Create(ctx, in)
			if err != nil {
				results[i] = dombatch.NewError(i, in.ID, err)
				return nil
			}
			results[i] = dombatch.NewOK(i, doc.ID())
			return nil
		})
	}
	_ = g.Wait() // items never return errors

	sum := dombatch.Summarize(results)
	logger.ForOp(ctx, "bulk_create_documents", "").Info("bulk create finished",
		zap.Int("succeeded", sum.Succeeded), zap.Int("failed", sum.Failed))
	return results
}

func logFailure(ctx context.Context, op, id string, err error) {
	l := logger.ForOp(ctx, op, id)
	if domain.IsClientError(err) {
		l.Info("request rejected", zap.Error(err))
		return
	}
	l.Error("operation failed", zap.Error(err))
}
