package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds all Prometheus metrics for the engagement API
type Metrics struct {
	ReportRequests      *prometheus.CounterVec
	ReportDuration      *prometheus.HistogramVec
	RecordFetchFailures *prometheus.CounterVec
	PanelQueries        *prometheus.CounterVec
	InviteRedemptions   *prometheus.CounterVec
	CacheHits           *prometheus.CounterVec
}
