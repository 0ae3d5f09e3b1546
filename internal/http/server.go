package http

import (
	"database/sql"
	"net/http"

	"github.com/mauv0809/slackelo/internal/config"
	"github.com/mauv0809/slackelo/internal/http/handlers"
	"github.com/mauv0809/slackelo/internal/metrics"
	"github.com/mauv0809/slackelo/internal/processor"
	"github.com/mauv0809/slackelo/internal/pubsub"
)

func NewServer(db *sql.DB, processor *processor.Processor, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, announcer handlers.Announcer, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		DB:             db,
		Processor:      processor,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Announcer:      announcer,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	slackAuth := slackVerifier(s.Cfg.Slack.SigningSecret)
	apiAuth := tokenAuth(s.Cfg.APIToken)
	leaderboardMax := s.Cfg.LeaderboardMax

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(s.DB), paramsMiddleware))

	s.Router.Handle("POST /slack/commands", Chain(handlers.SlackCommandHandler(s.Processor, s.Metrics, leaderboardMax), requestIDMiddleware, paramsMiddleware, slackAuth))
	s.Router.Handle("POST /slack/events", Chain(handlers.SlackEventsHandler(s.Processor, s.Announcer), requestIDMiddleware, paramsMiddleware, slackAuth))
	s.Router.Handle("POST /pubsub/game-events", Chain(handlers.GameEventsHandler(s.pubsub, s.Announcer), requestIDMiddleware, paramsMiddleware, apiAuth))

	api := func(pattern string, h http.HandlerFunc) {
		s.Router.Handle(pattern, Chain(h, requestIDMiddleware, paramsMiddleware, apiAuth))
	}
	api("GET /api/channels/{channelID}/leaderboard", handlers.LeaderboardHandler(s.Processor, leaderboardMax))
	api("GET /api/channels/{channelID}/stats", handlers.StatisticsHandler(s.Processor))
	api("GET /api/channels/{channelID}/kfactor", handlers.GetKFactorHandler(s.Processor))
	api("PUT /api/channels/{channelID}/kfactor", handlers.SetKFactorHandler(s.Processor))
	api("POST /api/channels/{channelID}/games", handlers.RecordGameHandler(s.Processor))
	api("GET /api/channels/{channelID}/games/{gameID}", handlers.GetGameHandler(s.Processor))
	api("DELETE /api/channels/{channelID}/games/last", handlers.UndoLastGameHandler(s.Processor))
	api("GET /api/channels/{channelID}/players/{userID}/rating", handlers.RatingHandler(s.Processor))
	api("GET /api/channels/{channelID}/players/{userID}/history", handlers.HistoryHandler(s.Processor))
	api("POST /api/channels/{channelID}/players/{userID}/gamble", handlers.GambleHandler(s.Processor))
	api("DELETE /api/channels/{channelID}", handlers.ResetChannelHandler(s.Processor))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
