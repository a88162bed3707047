package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "graphmcp"
)

var (
	graphDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}

	// Graph transport metrics
	GraphRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graph_requests_total",
		Help:      "Count of Microsoft Graph requests issued.",
	}, []string{"method", "status"})

	GraphRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "graph_request_duration_seconds",
		Help:      "Time taken for a single Microsoft Graph round trip.",
		Buckets:   graphDurationBuckets,
	}, []string{"method"})

	GraphThrottledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graph_throttled_total",
		Help:      "Count of Graph responses that triggered throttle retries.",
	}, []string{"method"})

	// MCP tool metrics
	ToolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tool_calls_total",
		Help:      "Count of MCP tool invocations.",
	}, []string{"tool", "status"})

	ToolCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "tool_call_duration_seconds",
		Help:      "Time taken for an MCP tool invocation.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"tool"})
)
