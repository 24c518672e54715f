// Package metrics provides the central Prometheus registry reference for
// the profile client. Metrics are defined in their owning packages (api,
// batch) to avoid circular dependencies; this package documents them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registerer used by the client.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/api):
//   - leetcode_api_requests_total{endpoint, status} (Counter): Requests by logical endpoint (profile, solved, badges) and HTTP status
//   - leetcode_api_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - leetcode_api_errors_total{class} (Counter): Errors by class (not_found, rate_limit, server, network, parse)
//
// Batch Metrics (pkg/batch):
//   - leetcode_batches_total (Counter): Batch fetch invocations
//   - leetcode_batch_size (Histogram): Usernames per batch
//   - leetcode_batch_duration_seconds (Histogram): Wall-clock duration per batch
//   - leetcode_batch_record_failures_total (Counter): Per-username failures across all batches
//
// Example Prometheus Queries:
//
//   # Per-endpoint error rate
//   sum(rate(leetcode_api_errors_total[5m])) by (class)
//
//   # P95 request latency
//   histogram_quantile(0.95, rate(leetcode_api_request_duration_seconds_bucket[5m]))
//
//   # Failure ratio per batch
//   rate(leetcode_batch_record_failures_total[15m]) / rate(leetcode_batch_size_sum[15m])
