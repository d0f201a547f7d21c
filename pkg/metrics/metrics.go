// Package metrics provides the centralized Prometheus metrics registry
// reference for the Fusion client. All metrics are defined in their
// respective packages (client, ratelimit, pagination) to maintain
// modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the Fusion client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - fusion_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - fusion_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - fusion_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Retry Metrics (pkg/client):
//   - fusion_retries_total{error_class} (Counter): Retry attempts by error class
//   - fusion_retry_exhausted_total{error_class} (Counter): Requests that exhausted the retry ceiling
//
// Quota Metrics (pkg/ratelimit):
//   - fusion_quota_sleeps_total (Counter): Quota-reset waits triggered by 429 responses
//   - fusion_quota_sleep_seconds (Histogram): Quota-reset wait durations
//
// Pagination Metrics (pkg/pagination):
//   - fusion_pages_fetched_total (Counter): Result pages fetched successfully
//   - fusion_page_failures_total (Counter): Result pages skipped after terminal failure
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(fusion_errors_total[5m])
//
//   # Share of requests hitting the daily quota
//   rate(fusion_quota_sleeps_total[1h])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(fusion_request_duration_seconds_bucket[5m]))
//
//   # Pagination loss rate
//   rate(fusion_page_failures_total[5m]) / rate(fusion_pages_fetched_total[5m])
