package processor

import "github.com/mauv0809/slackelo/internal/rating"

// Store defines the database operations required by the processor.
type Store interface {
	RecordGame(channelID, teamID string, rankings [][]string) (*rating.Game, error)
	SimulateGame(channelID string, rankings [][]string) (*rating.Simulation, error)
	UndoLastGame(channelID string) (int64, error)
	GetGame(channelID string, gameID int64) (*rating.Game, error)
	GetOrCreateChannel(channelID, teamID string) (*rating.Channel, error)
	GetRating(userID, channelID string) (int, error)
	GetLeaderboard(channelID string, limit int) ([]rating.LeaderboardEntry, error)
	GetHistory(userID, channelID string, limit, offset int) ([]rating.HistoryEntry, error)
	GetHistoryCount(userID, channelID string) (int, error)
	GetKFactor(channelID string) (int, error)
	SetKFactor(channelID string, kFactor int) error
	ToggleGambling(userID, channelID string) (bool, error)
	GetStatistics(channelID string) (*rating.Statistics, error)
	ResetChannel(channelID string) (int, error)
}
