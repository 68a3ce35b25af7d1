package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "allocation"

var (
	claimBatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "claim_batches_total",
			Help:      "Claim batches by outcome (committed or the rejection reason).",
		},
		[]string{"outcome"},
	)

	claimLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "claim_duration_seconds",
			Help:      "End-to-end latency of a claim batch including retries.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	txRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_retries_total",
			Help:      "Allocation transactions retried after a transient storage failure.",
		},
	)

	eventsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Live events not delivered because a subscriber buffer was full.",
		},
		[]string{"type"},
	)

	streamSubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_subscribers",
			Help:      "Live update stream subscriptions currently open.",
		},
	)

	throttled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "throttled_requests_total",
			Help:      "Requests rejected by the per-user rate throttle.",
		},
	)
)

var registerOnce sync.Once

// Register adds the collectors to the default prometheus registry
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(claimBatches, claimLatency, txRetries, eventsDropped, streamSubscribers, throttled)
	})
}

func RecordClaim(outcome string, elapsed time.Duration) {
	claimBatches.WithLabelValues(outcome).Inc()
	claimLatency.Observe(elapsed.Seconds())
}

func RecordRetry() {
	txRetries.Inc()
}

func RecordEventDropped(eventType string) {
	eventsDropped.WithLabelValues(eventType).Inc()
}

func SetStreamSubscribers(n int) {
	streamSubscribers.Set(float64(n))
}

func RecordThrottled() {
	throttled.Inc()
}
