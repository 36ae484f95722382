package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "board_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "board_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// LikeCountBatchSize records how many post ids each batched like-count lookup carries.
	LikeCountBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "board_like_count_batch_size",
		Help:    "Number of post ids per batched like count lookup",
		Buckets: []float64{1, 5, 10, 20, 50, 100},
	})

	// PostMutations counts post mutations by operation and outcome code.
	PostMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "board_post_mutations_total",
		Help: "Total post mutations by operation and outcome",
	}, []string{"operation", "outcome"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
