package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		GamesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slackelo_games_recorded_total",
			Help: "The total number of games recorded.",
		}),
		GamesSimulated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slackelo_games_simulated_total",
			Help: "The total number of games simulated without being stored.",
		}),
		GamesUndone: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slackelo_games_undone_total",
			Help: "The total number of games removed with undo.",
		}),
		ChannelResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slackelo_channel_resets_total",
			Help: "The total number of channels wiped.",
		}),
		RecordFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slackelo_games_record_failed_total",
			Help: "The total number of games that could not be recorded.",
		}),
		RecordDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "slackelo_game_record_duration_seconds",
			Help:    "The duration of recording a single game.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		SlashCommands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slackelo_slash_commands_total",
			Help: "The total number of slash commands received.",
		}, []string{"command"}),
		SlashCommandsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slackelo_slash_commands_failed_total",
			Help: "The total number of slash commands that returned an error.",
		}, []string{"command"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slackelo_events_published_total",
			Help: "The total number of game events published.",
		}, []string{"event"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "slackelo_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.GamesRecorded,
		s.GamesSimulated,
		s.GamesUndone,
		s.ChannelResets,
		s.RecordFailed,
		s.RecordDuration,
		s.SlashCommands,
		s.SlashCommandsFailed,
		s.EventsPublished,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncGamesRecorded() {
	s.GamesRecorded.Inc()
}

func (s *Service) IncGamesSimulated() {
	s.GamesSimulated.Inc()
}

func (s *Service) IncGamesUndone() {
	s.GamesUndone.Inc()
}

func (s *Service) IncChannelResets() {
	s.ChannelResets.Inc()
}

func (s *Service) IncRecordFailed() {
	s.RecordFailed.Inc()
}

func (s *Service) ObserveRecordDuration(duration float64) {
	s.RecordDuration.Observe(duration)
}

func (s *Service) IncSlashCommand(command string) {
	s.SlashCommands.WithLabelValues(command).Inc()
}

func (s *Service) IncSlashCommandFailed(command string) {
	s.SlashCommandsFailed.WithLabelValues(command).Inc()
}

func (s *Service) IncEventsPublished(event string) {
	s.EventsPublished.WithLabelValues(event).Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
