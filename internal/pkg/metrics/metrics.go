package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// QueuePollsTotal counts queue round trips by outcome.
	QueuePollsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roverlink_queue_polls_total",
			Help: "Total number of queue polls, by outcome (message, empty, error).",
		},
		[]string{"outcome"},
	)

	// CommandsTotal counts decoded commands by resolved action.
	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roverlink_commands_total",
			Help: "Total number of decoded commands, by action.",
		},
		[]string{"action"},
	)

	// DeleteFailuresTotal counts acknowledgments that failed. The message
	// may be redelivered; decoding and planning tolerate duplicates.
	DeleteFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "roverlink_queue_delete_failures_total",
			Help: "Total number of failed message deletions.",
		},
	)

	// BatchLatency observes the time from batch send to device acknowledgment.
	BatchLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roverlink_batch_latency_seconds",
			Help:    "Latency of actuator batch dispatch acknowledgment.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(QueuePollsTotal)
	prometheus.MustRegister(CommandsTotal)
	prometheus.MustRegister(DeleteFailuresTotal)
	prometheus.MustRegister(BatchLatency)
}
