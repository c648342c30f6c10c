package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SnapshotsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossmatch_snapshots_consumed_total",
			Help: "Total number of market snapshots consumed",
		},
		[]string{"platform", "status"}, // polymarket/kalshi, success/error
	)

	ScansRun = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crossmatch_scans_total",
			Help: "Total number of full matching scans",
		},
	)

	ScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crossmatch_scan_duration_seconds",
			Help:    "Duration of one full matching scan",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	PairsMatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crossmatch_pairs_matched_total",
			Help: "Total number of validated pairs produced by scans",
		},
	)

	EquivalenceScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crossmatch_equivalence_scores",
			Help:    "Distribution of overall equivalence scores for validated pairs",
			Buckets: []float64{.5, .6, .65, .7, .75, .8, .85, .9, .95, 1},
		},
	)

	OpportunitiesFound = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossmatch_opportunities_found_total",
			Help: "Total number of executable opportunities found",
		},
		[]string{"grade"}, // A, B, C, D, F
	)

	OpportunitiesSuppressed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crossmatch_opportunities_suppressed_total",
			Help: "Total number of opportunities suppressed by the dedupe cache",
		},
	)

	StoreWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossmatch_store_writes_total",
			Help: "Total number of persistence operations",
		},
		[]string{"operation", "status"}, // upsert_markets/insert_opportunity, success/error
	)
)

// RecordSnapshot records one consumed snapshot.
func RecordSnapshot(platform string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	SnapshotsConsumed.WithLabelValues(platform, status).Inc()
}

// RecordScan records one completed matching scan and its yield.
func RecordScan(duration time.Duration, pairs int) {
	ScansRun.Inc()
	ScanDuration.Observe(duration.Seconds())
	PairsMatched.Add(float64(pairs))
}

// RecordOpportunity records one found opportunity by confidence grade.
func RecordOpportunity(grade string) {
	OpportunitiesFound.WithLabelValues(grade).Inc()
}

// RecordStoreWrite records one persistence operation.
func RecordStoreWrite(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	StoreWrites.WithLabelValues(operation, status).Inc()
}

// Serve exposes /metrics on addr. It blocks, so callers run it in a
// goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
