package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/seekr/internal/db"
)

func TestEngineObserver_LabelsByOutcome(t *testing.T) {
	var obs EngineObserver
	obs.ObserveOp("bleve", db.OpSearch, 3*time.Millisecond, nil)
	obs.ObserveOp("bleve", db.OpGet, time.Millisecond, &db.Error{Op: db.OpGet, Err: db.ErrDocumentNotFound})
	obs.ObserveOp("opensearch", db.OpSearch, time.Second, db.Unavailable(db.OpSearch, errors.New("dial tcp: refused")))

	if n := testutil.CollectAndCount(EngineOperationDuration); n < 3 {
		t.Errorf("expected at least 3 label sets, got %d", n)
	}
}

func TestInteractionCounter(t *testing.T) {
	var c InteractionCounter
	before := testutil.ToFloat64(InteractionsTotal.WithLabelValues("like"))
	c.Inc("like")
	c.Inc("like")

	if got := testutil.ToFloat64(InteractionsTotal.WithLabelValues("like")); got != before+2 {
		t.Errorf("expected %v, got %v", before+2, got)
	}
}

func TestRegisterEngineMetrics_Idempotent(t *testing.T) {
	RegisterEngineMetrics()
	RegisterEngineMetrics()
}
