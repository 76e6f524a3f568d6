// Package observability provides metrics and tracing for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yapp_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FeedRequests counts feed queries by filter combination.
	FeedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yapp_feed_requests_total",
		Help: "Total number of feed queries by filter",
	}, []string{"search", "dislikes_only"})

	// MaskedTokens counts tokens replaced by the profanity filter.
	MaskedTokens = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yapp_profanity_masked_tokens_total",
		Help: "Total number of tokens masked by the profanity filter",
	})

	// MediaDeduplicated counts uploads resolved to an existing blob.
	MediaDeduplicated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yapp_media_deduplicated_total",
		Help: "Total number of media uploads answered with an existing row",
	})
)
