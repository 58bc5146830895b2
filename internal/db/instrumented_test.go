package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/seekr/internal/db/query"
)

type fakeEngine struct {
	Engine
	getErr error
}

func (fakeEngine) Driver() string { return "fake" }

func (f fakeEngine) GetDocument(context.Context, string, string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return []byte(`{}`), nil
}

func (fakeEngine) Search(context.Context, string, *query.Request) (*SearchResult, error) {
	return &SearchResult{Total: 1}, nil
}

type observed struct {
	driver, op string
	err        error
}

type recordingObserver struct {
	calls []observed
}

func (r *recordingObserver) ObserveOp(driver, op string, _ time.Duration, err error) {
	r.calls = append(r.calls, observed{driver: driver, op: op, err: err})
}

func TestInstrumented_ReportsEveryCall(t *testing.T) {
	obs := &recordingObserver{}
	missing := &Error{Op: OpGet, Err: ErrDocumentNotFound}
	e := Instrument(fakeEngine{getErr: missing}, obs)
	ctx := context.Background()

	if _, err := e.GetDocument(ctx, "products", "x"); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("error must pass through, got %v", err)
	}
	res, err := e.Search(ctx, "products", &query.Request{Size: 1})
	if err != nil || res.Total != 1 {
		t.Fatalf("unexpected search result %v, %v", res, err)
	}

	if len(obs.calls) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(obs.calls))
	}
	if obs.calls[0] != (observed{driver: "fake", op: OpGet, err: missing}) {
		t.Errorf("unexpected first observation %+v", obs.calls[0])
	}
	if obs.calls[1].op != OpSearch || obs.calls[1].err != nil {
		t.Errorf("unexpected second observation %+v", obs.calls[1])
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{&Error{Op: OpGet, Err: ErrDocumentNotFound}, "not_found"},
		{&Error{Op: OpSearch, Err: ErrIndexNotFound}, "not_found"},
		{&Error{Op: OpCreateIndex, Err: ErrIndexExists}, "exists"},
		{Unavailable(OpSearch, context.DeadlineExceeded), "unavailable"},
		{&Error{Op: OpSearch, Err: ErrRejected}, "rejected"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		if got := Status(tt.err); got != tt.want {
			t.Errorf("Status(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
