package handler

import (
	"fmt"
	"net/http"

	"github.com/wordledger/wordledger/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "# TYPE wordledger_tokens_issued_total counter\n")
	writeMetric(w, "wordledger_tokens_issued_total %d\n", snap.TokensIssued)
	writeMetric(w, "# TYPE wordledger_words_total counter\n")
	writeMetric(w, "wordledger_words_total{outcome=\"created\"} %d\n", snap.WordsCreated)
	writeMetric(w, "wordledger_words_total{outcome=\"rejected\"} %d\n", snap.WordsRejected)
	writeMetric(w, "wordledger_words_total{outcome=\"deleted\"} %d\n", snap.WordsDeleted)
	writeMetric(w, "# TYPE wordledger_rate_limited_total counter\n")
	writeMetric(w, "wordledger_rate_limited_total %d\n", snap.RateLimited)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
