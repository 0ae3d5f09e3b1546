package rating

// RatingStore defines the interface for reading and writing channel ratings.
type RatingStore interface {
	GetOrCreatePlayer(userID string) (*Player, error)
	GetOrCreateChannel(channelID, teamID string) (*Channel, error)
	GetOrCreateChannelPlayer(userID, channelID string) (*ChannelPlayer, error)

	GetKFactor(channelID string) (int, error)
	SetKFactor(channelID string, kFactor int) error

	SetGambling(userID, channelID string, gambling bool) error
	IsGambling(userID, channelID string) (bool, error)
	ToggleGambling(userID, channelID string) (bool, error)

	RecordGame(channelID, teamID string, rankings [][]string) (*Game, error)
	SimulateGame(channelID string, rankings [][]string) (*Simulation, error)
	UndoLastGame(channelID string) (int64, error)
	GetGame(channelID string, gameID int64) (*Game, error)

	GetRating(userID, channelID string) (int, error)
	GetLeaderboard(channelID string, limit int) ([]LeaderboardEntry, error)
	GetHistory(userID, channelID string, limit, offset int) ([]HistoryEntry, error)
	GetHistoryCount(userID, channelID string) (int, error)
	GetStatistics(channelID string) (*Statistics, error)
	ResetChannel(channelID string) (int, error)
}
