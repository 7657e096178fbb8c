// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StorageFailures counts storage reads and writes that failed or had to
	// degrade to an empty value, by storage key and operation.
	StorageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "costs",
		Name:      "storage_failures_total",
		Help:      "Storage operations that failed or degraded, by key and operation.",
	}, []string{"key", "op"})

	// RPCRequests counts finished RPCs by procedure and result code.
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "costs",
		Name:      "rpc_requests_total",
		Help:      "Finished RPCs by procedure and code.",
	}, []string{"procedure", "code"})

	// RPCDuration observes RPC latency by procedure.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "costs",
		Name:      "rpc_duration_seconds",
		Help:      "RPC latency by procedure.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})
)
