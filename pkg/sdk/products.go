package seekr

import (
	"context"
	"fmt"
	"time"

	dombatch "github.com/kailas-cloud/seekr/internal/domain/batch"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/document/patch"
	documentuc "github.com/kailas-cloud/seekr/internal/usecase/document"
)

// ProductService creates, reads, updates and deletes products.
type ProductService struct {
	svc documentUseCase
	obs *observer
}

// Create validates and indexes a product, returning it as stored.
func (s *ProductService) Create(ctx context.Context, p NewProduct) (_ Product, err error) {
	start := time.Now()
	defer func() { s.obs.observe("products.create", start, err) }()

	d, err := s.svc.Create(ctx, toCreateInput(p))
	if err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return fromInternalDocument(&d), nil
}

// Get retrieves a product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (_ Product, err error) {
	start := time.Now()
	defer func() { s.obs.observe("products.get", start, err) }()

	d, err := s.svc.Get(ctx, id)
	if err != nil {
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return fromInternalDocument(&d), nil
}

// Update applies a partial update and returns the result.
func (s *ProductService) Update(ctx context.Context, id string, p ProductPatch) (_ Product, err error) {
	start := time.Now()
	defer func() { s.obs.observe("products.update", start, err) }()

	d, err := s.svc.Update(ctx, id, patch.Fields(p))
	if err != nil {
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	return fromInternalDocument(&d), nil
}

// Delete removes a product by ID.
func (s *ProductService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("products.delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// BulkCreate indexes products concurrently; every item gets its own result.
func (s *ProductService) BulkCreate(ctx context.Context, products []NewProduct) []BatchResult {
	start := time.Now()
	inputs := make([]documentuc.CreateInput, len(products))
	for i, p := range products {
		inputs[i] = toCreateInput(p)
	}
	results := s.svc.BulkCreate(ctx, inputs)

	var err error
	if dombatch.Summarize(results).Failed > 0 {
		err = fmt.Errorf("bulk create: some items failed")
	}
	s.obs.observe("products.bulk_create", start, err)
	return fromBatchResults(results)
}

func toCreateInput(p NewProduct) documentuc.CreateInput {
	return documentuc.CreateInput{
		ID: p.ID,
		Attributes: domdoc.Attributes{
			Title:      p.Title,
			Content:    p.Content,
			Category:   p.Category,
			Brand:      p.Brand,
			Color:      p.Color,
			Size:       p.Size,
			Condition:  p.Condition,
			Tags:       p.Tags,
			Price:      p.Price,
			Rating:     p.Rating,
			Popularity: p.Popularity,
			Boosted:    p.Boosted,
		},
	}
}

func fromBatchResults(results []dombatch.Result) []BatchResult {
	out := make([]BatchResult, len(results))
	for i, r := range results {
		out[i] = BatchResult{
			Index: r.Index(),
			ID:    r.ID(),
			OK:    r.Status() == dombatch.StatusOK,
			Err:   r.Err(),
		}
	}
	return out
}
