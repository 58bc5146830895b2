package result

import "github.com/kailas-cloud/seekr/internal/domain/document"

// Result is one page of search hits.
type Result struct {
	documents []document.Document
	total     int
	took      int64
	page      int
	size      int
}

// New creates a search result page.
func New(docs []document.Document, total int, took int64, page, size int) Result {
	if docs == nil {
		docs = []document.Document{}
	}
	return Result{documents: docs, total: total, took: took, page: page, size: size}
}

// Documents returns the hits in engine order.
func (r *Result) Documents() []document.Document { return r.documents }

// Total returns the number of matching documents across all pages.
func (r *Result) Total() int { return r.total }

// Took returns the engine-reported execution time in milliseconds.
func (r *Result) Took() int64 { return r.took }

// Page returns the 1-based page number that produced this result.
func (r *Result) Page() int { return r.page }

// Size returns the page size that produced this result.
func (r *Result) Size() int { return r.size }

// HasMore reports whether later pages exist.
func (r *Result) HasMore() bool { return r.page*r.size < r.total }
