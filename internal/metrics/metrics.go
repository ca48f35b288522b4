// Package metrics defines the Prometheus metrics of the catalogue service.
// All metrics are registered with the default registry at init through
// promauto and exposed by promhttp on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "katalog"

// Result label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// AssetOperationsTotal counts image pipeline calls.
// Labels:
//   - operation: "upload" or "remove"
//   - result: "success" or "error"
var AssetOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "asset_operations_total",
		Help:      "Total number of image asset uploads and removals.",
	},
	[]string{"operation", "result"},
)

// AssetUploadBytes observes the size of uploaded images.
var AssetUploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "asset_upload_bytes",
		Help:      "Size of uploaded image assets in bytes.",
		Buckets:   prometheus.ExponentialBuckets(16*1024, 2, 10), // 16KiB .. 8MiB
	},
)

// ProductMutationsTotal counts product writes.
// Labels:
//   - operation: "create", "update" or "delete"
//   - result: "success" or the error kind (e.g. "validation", "asset", "backend")
var ProductMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_mutations_total",
		Help:      "Total number of product create, update and delete operations.",
	},
	[]string{"operation", "result"},
)

// GateDecisionsTotal counts session gate outcomes.
// Label:
//   - state: "authorized" or "unauthorized"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_gate_decisions_total",
		Help:      "Total number of session gate decisions by resulting state.",
	},
	[]string{"state"},
)

// SignInsTotal counts credential exchanges by result.
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of admin sign-in attempts by result.",
	},
	[]string{"result"},
)

// HTTPRequestDuration measures request latency.
// Labels:
//   - method: HTTP method
//   - status: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "status"},
)
