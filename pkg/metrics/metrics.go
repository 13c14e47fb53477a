// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// SessionsTotal tracks total shopping sessions created.
	SessionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shop_sessions_total",
			Help: "Total shopping sessions created",
		},
	)

	// QueriesTotal tracks product queries by outcome.
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_queries_total",
			Help: "Total product recommendation queries",
		},
		[]string{"outcome"},
	)

	// RecommendationsReturned tracks how many products each query yields.
	RecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shop_recommendations_returned",
			Help:    "Products returned per successful query",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
	)

	// ChatTurnsTotal tracks chat turns by outcome.
	ChatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_chat_turns_total",
			Help: "Total chat turns processed",
		},
		[]string{"outcome"},
	)

	// CartOpsTotal tracks cart mutations.
	CartOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_cart_ops_total",
			Help: "Total cart operations",
		},
		[]string{"op"},
	)

	// FavoriteTogglesTotal tracks favorite toggles by resulting action.
	FavoriteTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_favorite_toggles_total",
			Help: "Total favorite toggles",
		},
		[]string{"action"},
	)

	// NotificationsTotal tracks notifications raised by severity.
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_notifications_total",
			Help: "Total notifications raised",
		},
		[]string{"severity"},
	)

	// LLMCallDuration tracks backend LLM call duration.
	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_call_duration_seconds",
			Help:    "LLM call duration in seconds",
			Buckets: []float64{.25, .5, 1, 2, 5, 10, 20, 30, 45, 60},
		},
		[]string{"kind", "status"},
	)

	// LLMTokensTotal tracks total LLM tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"model", "direction"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordLLMCall records metrics for a completed backend LLM call.
func RecordLLMCall(kind, status, model string, duration float64, tokensIn, tokensOut int) {
	LLMCallDuration.WithLabelValues(kind, status).Observe(duration)
	if model != "" {
		LLMTokensTotal.WithLabelValues(model, "in").Add(float64(tokensIn))
		LLMTokensTotal.WithLabelValues(model, "out").Add(float64(tokensOut))
	}
}
