package processor

import (
	"github.com/mauv0809/slackelo/internal/metrics"
	"github.com/mauv0809/slackelo/internal/pubsub"
)

// Processor runs games through the rating store and reports what changed.
type Processor struct {
	store   Store
	pubsub  pubsub.PubSubClient
	metrics metrics.Metrics
}

// PlayerResult is one participant's outcome.
type PlayerResult struct {
	UserID   string `json:"user_id"`
	Before   int    `json:"rating_before"`
	After    int    `json:"rating_after"`
	Position int    `json:"position"`
	Gambled  bool   `json:"gambled"`
}

func (p PlayerResult) Change() int {
	return p.After - p.Before
}

// GameResult describes a recorded or simulated game. GameID is zero when simulated.
type GameResult struct {
	GameID    int64          `json:"game_id,omitempty"`
	ChannelID string         `json:"channel_id"`
	Simulated bool           `json:"simulated"`
	Timestamp int64          `json:"timestamp,omitempty"`
	Rankings  [][]string     `json:"rankings"`
	Players   []PlayerResult `json:"players"`
}

// Before maps every player to their rating before the game.
func (r *GameResult) Before() map[string]int {
	out := make(map[string]int, len(r.Players))
	for _, p := range r.Players {
		out[p.UserID] = p.Before
	}
	return out
}

// After maps every player to their rating after the game.
func (r *GameResult) After() map[string]int {
	out := make(map[string]int, len(r.Players))
	for _, p := range r.Players {
		out[p.UserID] = p.After
	}
	return out
}

// Positions maps every player to their finishing position.
func (r *GameResult) Positions() map[string]int {
	out := make(map[string]int, len(r.Players))
	for _, p := range r.Players {
		out[p.UserID] = p.Position
	}
	return out
}
