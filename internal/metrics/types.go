package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	GamesRecorded       prometheus.Counter
	GamesSimulated      prometheus.Counter
	GamesUndone         prometheus.Counter
	ChannelResets       prometheus.Counter
	RecordFailed        prometheus.Counter
	RecordDuration      prometheus.Histogram
	SlashCommands       *prometheus.CounterVec
	SlashCommandsFailed *prometheus.CounterVec
	EventsPublished     *prometheus.CounterVec
	StartupTimeSeconds  prometheus.Gauge
}
