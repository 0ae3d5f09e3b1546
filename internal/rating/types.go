package rating

import (
	"database/sql"
	"sync"
)

// store handles all database operations for ratings.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Player is a Slack user. It carries no attributes beyond its ID.
type Player struct {
	UserID string `json:"user_id"`
}

// Channel scopes ratings. TeamID is the Slack workspace the channel was first seen in.
type Channel struct {
	ID      string `json:"channel_id"`
	TeamID  string `json:"team_id,omitempty"`
	KFactor int    `json:"k_factor"`
}

// ChannelPlayer is a player's standing in one channel.
type ChannelPlayer struct {
	UserID    string `json:"user_id"`
	ChannelID string `json:"channel_id"`
	Rating    int    `json:"rating"`
	Gambling  bool   `json:"gambling"`
}

// Game is one recorded result.
type Game struct {
	ID        int64        `json:"id"`
	ChannelID string       `json:"channel_id"`
	Timestamp int64        `json:"timestamp"`
	Players   []PlayerGame `json:"players"`
}

// PlayerGame is one player's part in a game.
type PlayerGame struct {
	UserID       string `json:"user_id"`
	GameID       int64  `json:"game_id,omitempty"`
	RatingBefore int    `json:"rating_before"`
	RatingAfter  int    `json:"rating_after"`
	Position     int    `json:"position"`
	Gambled      bool   `json:"gambled"`
}

// Change is the rating difference caused by the game.
func (p PlayerGame) Change() int {
	return p.RatingAfter - p.RatingBefore
}

// Simulation is what RecordGame would produce, without any of it being stored.
type Simulation struct {
	ChannelID string       `json:"channel_id"`
	KFactor   int          `json:"k_factor"`
	Players   []PlayerGame `json:"players"`
}

type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	Rating      int    `json:"rating"`
	GamesPlayed int    `json:"games_played"`
}

type HistoryEntry struct {
	GameID       int64 `json:"game_id"`
	RatingBefore int   `json:"rating_before"`
	RatingAfter  int   `json:"rating_after"`
	Position     int   `json:"position"`
	Timestamp    int64 `json:"timestamp"`
	Gambled      bool  `json:"gambled"`
}

// Change is the rating difference caused by the game.
func (h HistoryEntry) Change() int {
	return h.RatingAfter - h.RatingBefore
}

// PlayerStat attributes a value to the player who holds it.
type PlayerStat struct {
	UserID string `json:"user_id"`
	Value  int    `json:"value"`
}

// PlayerVariance attributes the variance of per-game rating changes to a player.
type PlayerVariance struct {
	UserID   string  `json:"user_id"`
	Variance float64 `json:"variance"`
}

// Statistics summarises a channel's full history. A nil field means no player qualified.
type Statistics struct {
	HighestRating    *PlayerStat     `json:"highest_rating,omitempty"`
	LowestRating     *PlayerStat     `json:"lowest_rating,omitempty"`
	BiggestGain      *PlayerStat     `json:"biggest_gain,omitempty"`
	BiggestLoss      *PlayerStat     `json:"biggest_loss,omitempty"`
	MostWins         *PlayerStat     `json:"most_wins,omitempty"`
	MostLastPlaces   *PlayerStat     `json:"most_last_places,omitempty"`
	MostGames        *PlayerStat     `json:"most_games,omitempty"`
	MostVolatile     *PlayerVariance `json:"most_volatile,omitempty"`
	MostConsistent   *PlayerVariance `json:"most_consistent,omitempty"`
	LongestWinStreak *PlayerStat     `json:"longest_win_streak,omitempty"`
	BiggestClimb     *PlayerStat     `json:"biggest_climb,omitempty"`
	TotalGames       int             `json:"total_games"`
}
