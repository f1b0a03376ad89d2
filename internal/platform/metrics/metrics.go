// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes the Prometheus instruments of the Sommelier API.

Instruments are registered on the default registry at package init and are
served by [Handler] on /metrics.

Groups:

  - HTTP: request latency and count by chi route pattern.
  - Catalog: snapshot size and version, reload outcomes.
  - Matching: ranking latency by ordering mode.
  - Cache: facet cache hits and misses.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sommelier_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route", "status_code"},
	)

	// Catalog Snapshot Metrics
	CatalogSnapshotSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sommelier_catalog_snapshot_wines",
			Help: "Number of wines in the active catalog snapshot",
		},
	)

	CatalogSnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sommelier_catalog_snapshot_version",
			Help: "Version of the active catalog snapshot (increments on every swap)",
		},
	)

	CatalogRejectedRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sommelier_catalog_rejected_records",
			Help: "Catalog rows excluded from the active snapshot by validation",
		},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sommelier_catalog_reloads_total",
			Help: "Catalog snapshot reload attempts by trigger and result",
		},
		[]string{"trigger", "result"},
	)

	CatalogReloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sommelier_catalog_reload_duration_seconds",
			Help:    "Duration of a full catalog scan and snapshot build",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Matching Metrics
	RankingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sommelier_ranking_duration_seconds",
			Help:    "Time spent filtering and ranking one request",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"ranked_by"},
	)

	// Facet Cache Metrics
	FacetCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sommelier_facet_cache_lookups_total",
			Help: "Facet cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
)

// RecordReload records one snapshot reload attempt.
func RecordReload(trigger string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	CatalogReloads.WithLabelValues(trigger, result).Inc()
	CatalogReloadDuration.Observe(duration.Seconds())
}

// SetSnapshot publishes the gauges describing the active snapshot.
func SetSnapshot(version uint64, size, rejected int) {
	CatalogSnapshotVersion.Set(float64(version))
	CatalogSnapshotSize.Set(float64(size))
	CatalogRejectedRecords.Set(float64(rejected))
}

// RecordRanking records the latency of one filter-and-rank pass.
func RecordRanking(rankedBy string, duration time.Duration) {
	RankingDuration.WithLabelValues(rankedBy).Observe(duration.Seconds())
}

// RecordFacetLookup counts one facet cache lookup.
func RecordFacetLookup(result string) {
	FacetCacheLookups.WithLabelValues(result).Inc()
}

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (writer *statusWriter) WriteHeader(code int) {
	writer.status = code
	writer.ResponseWriter.WriteHeader(code)
}

// Middleware observes request latency labelled by the matched chi route
// pattern, so /wines/42 and /wines/7 share one series.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		start := time.Now()
		recorder := &statusWriter{ResponseWriter: writer, status: http.StatusOK}

		next.ServeHTTP(recorder, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		HTTPRequestDuration.
			WithLabelValues(request.Method, route, strconv.Itoa(recorder.status)).
			Observe(time.Since(start).Seconds())
	})
}
