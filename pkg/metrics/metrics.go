// Package metrics provides the Prometheus metrics registry reference for the
// Unleashed client. All metrics are defined in pkg/client via promauto to
// keep them next to the code that drives them.
//
// This package documents the available metrics in one place.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the Unleashed client.
// All metrics are automatically registered via promauto in pkg/client.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - unleashed_requests_total{resource, status} (Counter): Total requests by resource and HTTP status
//   - unleashed_request_duration_seconds{resource} (Histogram): Request duration by resource
//   - unleashed_errors_total{class} (Counter): Errors by class (client, server, network)
//   - unleashed_pages_fetched_total{resource} (Counter): List pages fetched by resource
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(unleashed_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(unleashed_request_duration_seconds_bucket[5m]))
//
//   # 5xx share of traffic
//   sum(rate(unleashed_errors_total{class="server"}[5m])) / sum(rate(unleashed_requests_total[5m]))
