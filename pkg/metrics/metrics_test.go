package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorsAreRegistered(t *testing.T) {
	before := testutil.ToFloat64(QuestionsTotal.WithLabelValues("fallback", "keyword"))
	QuestionsTotal.WithLabelValues("fallback", "keyword").Inc()

	if got := testutil.ToFloat64(QuestionsTotal.WithLabelValues("fallback", "keyword")); got != before+1 {
		t.Errorf("expected counter to advance by one, got %v -> %v", before, got)
	}

	ExportsTotal.WithLabelValues("csv").Inc()
	if testutil.CollectAndCount(ExportsTotal) == 0 {
		t.Error("expected at least one export series")
	}
}
