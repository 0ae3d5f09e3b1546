package rating

import "sync"

// Mock is a mock implementation of the RatingStore interface for testing.
// Unset funcs return zero values. It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	GetOrCreatePlayerFunc        func(userID string) (*Player, error)
	GetOrCreateChannelFunc       func(channelID, teamID string) (*Channel, error)
	GetOrCreateChannelPlayerFunc func(userID, channelID string) (*ChannelPlayer, error)
	GetKFactorFunc               func(channelID string) (int, error)
	SetKFactorFunc               func(channelID string, kFactor int) error
	SetGamblingFunc              func(userID, channelID string, gambling bool) error
	IsGamblingFunc               func(userID, channelID string) (bool, error)
	ToggleGamblingFunc           func(userID, channelID string) (bool, error)
	RecordGameFunc               func(channelID, teamID string, rankings [][]string) (*Game, error)
	SimulateGameFunc             func(channelID string, rankings [][]string) (*Simulation, error)
	UndoLastGameFunc             func(channelID string) (int64, error)
	GetGameFunc                  func(channelID string, gameID int64) (*Game, error)
	GetRatingFunc                func(userID, channelID string) (int, error)
	GetLeaderboardFunc           func(channelID string, limit int) ([]LeaderboardEntry, error)
	GetHistoryFunc               func(userID, channelID string, limit, offset int) ([]HistoryEntry, error)
	GetHistoryCountFunc          func(userID, channelID string) (int, error)
	GetStatisticsFunc            func(channelID string) (*Statistics, error)
	ResetChannelFunc             func(channelID string) (int, error)

	// Call records
	RecordGameCalls []struct {
		ChannelID string
		TeamID    string
		Rankings  [][]string
	}
	SimulateGameCalls []struct {
		ChannelID string
		Rankings  [][]string
	}
	UndoLastGameCalls []string
	SetKFactorCalls   []struct {
		ChannelID string
		KFactor   int
	}
	ToggleGamblingCalls []struct {
		UserID    string
		ChannelID string
	}
	ResetChannelCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordGameCalls = nil
	m.SimulateGameCalls = nil
	m.UndoLastGameCalls = nil
	m.SetKFactorCalls = nil
	m.ToggleGamblingCalls = nil
	m.ResetChannelCalls = nil
}

func (m *Mock) GetOrCreatePlayer(userID string) (*Player, error) {
	if m.GetOrCreatePlayerFunc != nil {
		return m.GetOrCreatePlayerFunc(userID)
	}
	return &Player{UserID: userID}, nil
}

func (m *Mock) GetOrCreateChannel(channelID, teamID string) (*Channel, error) {
	if m.GetOrCreateChannelFunc != nil {
		return m.GetOrCreateChannelFunc(channelID, teamID)
	}
	return &Channel{ID: channelID, TeamID: teamID, KFactor: 32}, nil
}

func (m *Mock) GetOrCreateChannelPlayer(userID, channelID string) (*ChannelPlayer, error) {
	if m.GetOrCreateChannelPlayerFunc != nil {
		return m.GetOrCreateChannelPlayerFunc(userID, channelID)
	}
	return &ChannelPlayer{UserID: userID, ChannelID: channelID, Rating: 1000}, nil
}

func (m *Mock) GetKFactor(channelID string) (int, error) {
	if m.GetKFactorFunc != nil {
		return m.GetKFactorFunc(channelID)
	}
	return 32, nil
}

func (m *Mock) SetKFactor(channelID string, kFactor int) error {
	m.mu.Lock()
	m.SetKFactorCalls = append(m.SetKFactorCalls, struct {
		ChannelID string
		KFactor   int
	}{channelID, kFactor})
	m.mu.Unlock()
	if m.SetKFactorFunc != nil {
		return m.SetKFactorFunc(channelID, kFactor)
	}
	return nil
}

func (m *Mock) SetGambling(userID, channelID string, gambling bool) error {
	if m.SetGamblingFunc != nil {
		return m.SetGamblingFunc(userID, channelID, gambling)
	}
	return nil
}

func (m *Mock) IsGambling(userID, channelID string) (bool, error) {
	if m.IsGamblingFunc != nil {
		return m.IsGamblingFunc(userID, channelID)
	}
	return false, nil
}

func (m *Mock) ToggleGambling(userID, channelID string) (bool, error) {
	m.mu.Lock()
	m.ToggleGamblingCalls = append(m.ToggleGamblingCalls, struct {
		UserID    string
		ChannelID string
	}{userID, channelID})
	m.mu.Unlock()
	if m.ToggleGamblingFunc != nil {
		return m.ToggleGamblingFunc(userID, channelID)
	}
	return false, nil
}

func (m *Mock) RecordGame(channelID, teamID string, rankings [][]string) (*Game, error) {
	m.mu.Lock()
	m.RecordGameCalls = append(m.RecordGameCalls, struct {
		ChannelID string
		TeamID    string
		Rankings  [][]string
	}{channelID, teamID, rankings})
	m.mu.Unlock()
	if m.RecordGameFunc != nil {
		return m.RecordGameFunc(channelID, teamID, rankings)
	}
	return &Game{ChannelID: channelID}, nil
}

func (m *Mock) SimulateGame(channelID string, rankings [][]string) (*Simulation, error) {
	m.mu.Lock()
	m.SimulateGameCalls = append(m.SimulateGameCalls, struct {
		ChannelID string
		Rankings  [][]string
	}{channelID, rankings})
	m.mu.Unlock()
	if m.SimulateGameFunc != nil {
		return m.SimulateGameFunc(channelID, rankings)
	}
	return &Simulation{ChannelID: channelID, KFactor: 32}, nil
}

func (m *Mock) UndoLastGame(channelID string) (int64, error) {
	m.mu.Lock()
	m.UndoLastGameCalls = append(m.UndoLastGameCalls, channelID)
	m.mu.Unlock()
	if m.UndoLastGameFunc != nil {
		return m.UndoLastGameFunc(channelID)
	}
	return 0, nil
}

func (m *Mock) GetGame(channelID string, gameID int64) (*Game, error) {
	if m.GetGameFunc != nil {
		return m.GetGameFunc(channelID, gameID)
	}
	return nil, ErrNotFound
}

func (m *Mock) GetRating(userID, channelID string) (int, error) {
	if m.GetRatingFunc != nil {
		return m.GetRatingFunc(userID, channelID)
	}
	return 1000, nil
}

func (m *Mock) GetLeaderboard(channelID string, limit int) ([]LeaderboardEntry, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(channelID, limit)
	}
	return nil, nil
}

func (m *Mock) GetHistory(userID, channelID string, limit, offset int) ([]HistoryEntry, error) {
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(userID, channelID, limit, offset)
	}
	return nil, nil
}

func (m *Mock) GetHistoryCount(userID, channelID string) (int, error) {
	if m.GetHistoryCountFunc != nil {
		return m.GetHistoryCountFunc(userID, channelID)
	}
	return 0, nil
}

func (m *Mock) GetStatistics(channelID string) (*Statistics, error) {
	if m.GetStatisticsFunc != nil {
		return m.GetStatisticsFunc(channelID)
	}
	return &Statistics{}, nil
}

func (m *Mock) ResetChannel(channelID string) (int, error) {
	m.mu.Lock()
	m.ResetChannelCalls = append(m.ResetChannelCalls, channelID)
	m.mu.Unlock()
	if m.ResetChannelFunc != nil {
		return m.ResetChannelFunc(channelID)
	}
	return 0, nil
}
