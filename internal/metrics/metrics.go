package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// LifecycleEvents counts committed lifecycle operations by event type.
	LifecycleEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "incident",
		Subsystem: "lifecycle",
		Name:      "events_total",
		Help:      "Committed incident lifecycle operations, labeled by event type.",
	}, []string{"type"})

	// FeedDropped counts events evicted from a full subscriber buffer.
	FeedDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "incident",
		Subsystem: "feed",
		Name:      "dropped_events_total",
		Help:      "Events dropped (oldest first) because a subscriber buffer was full.",
	})

	FeedSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "incident",
		Subsystem: "feed",
		Name:      "subscribers",
		Help:      "Currently active feed subscriptions.",
	})

	OrphansRemoved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "incident",
		Subsystem: "evidence",
		Name:      "orphans_removed_total",
		Help:      "Evidence files removed by the janitor because no image record referenced them.",
	})

	RelaySinkFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "incident",
		Subsystem: "relay",
		Name:      "sink_failures_total",
		Help:      "Event relay sink invocations that returned an error, labeled by sink.",
	}, []string{"sink"})
)

// Register adds all collectors to the default registry. Safe to call more than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			LifecycleEvents,
			FeedDropped,
			FeedSubscribers,
			OrphansRemoved,
			RelaySinkFailures,
		)
	})
}
