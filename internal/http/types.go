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

type Server struct {
	DB             *sql.DB
	Processor      *processor.Processor
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Announcer      handlers.Announcer
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
