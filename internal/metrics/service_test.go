package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, gatherer prometheus.Gatherer) string {
	t.Helper()

	rr := httptest.NewRecorder()
	NewMetricsHandler(gatherer).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	return string(body)
}

func TestService(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncGamesRecorded()
	s.IncGamesRecorded()
	s.IncGamesUndone()
	s.IncSlashCommand("/game")
	s.IncSlashCommand("/game")
	s.IncSlashCommandFailed("/undo")
	s.IncEventsPublished("game-recorded")
	s.ObserveRecordDuration(0.02)
	s.SetStartupTime(1.5)

	body := scrape(t, reg)
	assert.Contains(t, body, "slackelo_games_recorded_total 2")
	assert.Contains(t, body, "slackelo_games_undone_total 1")
	assert.Contains(t, body, "slackelo_games_simulated_total 0")
	assert.Contains(t, body, `slackelo_slash_commands_total{command="/game"} 2`)
	assert.Contains(t, body, `slackelo_slash_commands_failed_total{command="/undo"} 1`)
	assert.Contains(t, body, `slackelo_events_published_total{event="game-recorded"} 1`)
	assert.Contains(t, body, "slackelo_game_record_duration_seconds_count 1")
	assert.Contains(t, body, "slackelo_startup_duration_seconds 1.5")
}

func TestNewService_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewService(reg)

	assert.Panics(t, func() { NewService(reg) }, "registering the same metrics twice should panic")
}
