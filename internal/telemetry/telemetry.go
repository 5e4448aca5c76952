// Package telemetry exposes ALICE-Search's query-serving metrics over
// Prometheus: how many queries ran, how long they took, how big their
// result sets were, and the cache's hit rate. It is the Prometheus-backed
// counterpart of a self-hosted analytics sketch — counters and histograms
// in place of HyperLogLog/DDSketch/CountMinSketch, scraped rather than
// queried in-process.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Telemetry holds every Prometheus collector ALICE-Search registers.
type Telemetry struct {
	QueriesTotal   *prometheus.CounterVec
	QueryLatency   prometheus.Histogram
	ResultCount    prometheus.Histogram
	CacheHitsTotal prometheus.Counter
	CacheMissTotal prometheus.Counter
	BuildDuration  prometheus.Histogram
	IndexSizeBytes prometheus.Gauge
}

// New creates and registers ALICE-Search's metric collectors against reg.
// Pass prometheus.NewRegistry() in tests to avoid colliding with any
// process-wide default registry.
func New(reg prometheus.Registerer) *Telemetry {
	t := &Telemetry{
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alice_queries_total",
				Help: "Total Count/Contains/Locate queries by outcome (hit, miss).",
			},
			[]string{"outcome"},
		),
		QueryLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "alice_query_latency_seconds",
				Help:    "Query latency in seconds, from backward search through locate resolution.",
				Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),
		ResultCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "alice_query_result_count",
				Help:    "Number of positions returned per Locate query.",
				Buckets: []float64{0, 1, 5, 10, 50, 100, 1000, 10000},
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "alice_cache_hits_total", Help: "Total query-cache hits."},
		),
		CacheMissTotal: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "alice_cache_misses_total", Help: "Total query-cache misses."},
		),
		BuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "alice_index_build_duration_seconds",
				Help:    "Time taken to build an Index via SA-IS and the wavelet matrix.",
				Buckets: prometheus.DefBuckets,
			},
		),
		IndexSizeBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "alice_index_size_bytes", Help: "Estimated resident size of the current Index."},
		),
	}

	reg.MustRegister(
		t.QueriesTotal, t.QueryLatency, t.ResultCount,
		t.CacheHitsTotal, t.CacheMissTotal, t.BuildDuration, t.IndexSizeBytes,
	)
	return t
}

// RecordQuery records one query's latency and result count, and bumps the
// queries-total counter for the given outcome ("hit" or "miss").
func (t *Telemetry) RecordQuery(outcome string, latency time.Duration, resultCount int) {
	t.QueriesTotal.WithLabelValues(outcome).Inc()
	t.QueryLatency.Observe(latency.Seconds())
	t.ResultCount.Observe(float64(resultCount))
}

// RecordCacheHit and RecordCacheMiss update the query cache's hit/miss
// counters.
func (t *Telemetry) RecordCacheHit()  { t.CacheHitsTotal.Inc() }
func (t *Telemetry) RecordCacheMiss() { t.CacheMissTotal.Inc() }

// RecordBuild records an Index build's duration and resulting size.
func (t *Telemetry) RecordBuild(d time.Duration, sizeBytes int) {
	t.BuildDuration.Observe(d.Seconds())
	t.IndexSizeBytes.Set(float64(sizeBytes))
}

// Handler returns the Prometheus scrape handler for reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// StartServer serves /metrics on port in the background, returning a
// shutdown function.
func StartServer(port int, reg *prometheus.Registry) (shutdown func(context.Context) error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(reg))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("telemetry server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("telemetry server error", "error", err)
		}
	}()

	return server.Shutdown
}
