package seekr

import (
	"context"

	dombatch "github.com/kailas-cloud/seekr/internal/domain/batch"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/document/patch"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/domain/search/result"
	documentuc "github.com/kailas-cloud/seekr/internal/usecase/document"
	healthuc "github.com/kailas-cloud/seekr/internal/usecase/health"
)

// --- documentUseCase mock ---

type mockDocumentUC struct {
	createFn func(ctx context.Context, in documentuc.CreateInput) (domdoc.Document, error)
	updateFn func(ctx context.Context, id string, f patch.Fields) (domdoc.Document, error)
	deleteFn func(ctx context.Context, id string) error
	getFn    func(ctx context.Context, id string) (domdoc.Document, error)
	bulkFn   func(ctx context.Context, inputs []documentuc.CreateInput) []dombatch.Result
}

func (m *mockDocumentUC) Create(ctx context.Context, in documentuc.CreateInput) (domdoc.Document, error) {
	return m.createFn(ctx, in)
}

func (m *mockDocumentUC) Update(ctx context.Context, id string, f patch.Fields) (domdoc.Document, error) {
	return m.updateFn(ctx, id, f)
}

func (m *mockDocumentUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockDocumentUC) Get(ctx context.Context, id string) (domdoc.Document, error) {
	return m.getFn(ctx, id)
}

func (m *mockDocumentUC) BulkCreate(ctx context.Context, inputs []documentuc.CreateInput) []dombatch.Result {
	return m.bulkFn(ctx, inputs)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn     func(ctx context.Context, opts ...request.Option) (result.Result, error)
	byCategoryFn func(ctx context.Context, category string, page, size int) (result.Result, error)
	byTagsFn     func(ctx context.Context, tags []string, page, size int) (result.Result, error)
	suggestFn    func(ctx context.Context, prefix string) ([]string, error)
	recommendFn  func(ctx context.Context, id string, limit int) ([]domdoc.Document, error)
	forUserFn    func(ctx context.Context, userID string, limit int) ([]domdoc.Document, error)
	categories   []string
	tags         []string
}

func (m *mockSearchUC) Search(ctx context.Context, opts ...request.Option) (result.Result, error) {
	return m.searchFn(ctx, opts...)
}

func (m *mockSearchUC) ByCategory(ctx context.Context, category string, page, size int) (result.Result, error) {
	return m.byCategoryFn(ctx, category, page, size)
}

func (m *mockSearchUC) ByTags(ctx context.Context, tags []string, page, size int) (result.Result, error) {
	return m.byTagsFn(ctx, tags, page, size)
}

func (m *mockSearchUC) Suggest(ctx context.Context, prefix string) ([]string, error) {
	return m.suggestFn(ctx, prefix)
}

func (m *mockSearchUC) Recommend(ctx context.Context, id string, limit int) ([]domdoc.Document, error) {
	return m.recommendFn(ctx, id, limit)
}

func (m *mockSearchUC) RecommendForUser(ctx context.Context, userID string, limit int) ([]domdoc.Document, error) {
	return m.forUserFn(ctx, userID, limit)
}

func (m *mockSearchUC) Categories(context.Context) []string { return m.categories }

func (m *mockSearchUC) Tags(context.Context) []string { return m.tags }

// --- interactionUseCase mock ---

type mockInteractionUC struct {
	recordFn func(ctx context.Context, userID, docID string, kind interaction.Kind) (domdoc.Document, error)
	resetFn  func(ctx context.Context, userID string) error
}

func (m *mockInteractionUC) Record(
	ctx context.Context, userID, docID string, kind interaction.Kind,
) (domdoc.Document, error) {
	return m.recordFn(ctx, userID, docID, kind)
}

func (m *mockInteractionUC) Reset(ctx context.Context, userID string) error {
	return m.resetFn(ctx, userID)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }
