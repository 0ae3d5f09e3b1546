package processor

import (
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/slackelo/internal/database"
	"github.com/mauv0809/slackelo/internal/metrics"
	"github.com/mauv0809/slackelo/internal/pubsub"
	"github.com/mauv0809/slackelo/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_RecordGame(t *testing.T) {
	t.Run("returns before and after ratings and publishes an event", func(t *testing.T) {
		// Setup
		store := rating.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock()
		p := New(store, metr, ps)

		store.RecordGameFunc = func(channelID, teamID string, rankings [][]string) (*rating.Game, error) {
			return &rating.Game{
				ID:        42,
				ChannelID: channelID,
				Timestamp: 1700000000,
				Players: []rating.PlayerGame{
					{UserID: "U1", GameID: 42, RatingBefore: 1000, RatingAfter: 1032, Position: 1, Gambled: true},
					{UserID: "U2", GameID: 42, RatingBefore: 1000, RatingAfter: 984, Position: 2},
				},
			}, nil
		}

		// Execute
		result, err := p.RecordGame("C1", "T1", [][]string{{"U1"}, {"U2"}})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(42), result.GameID)
		assert.False(t, result.Simulated)
		assert.Equal(t, map[string]int{"U1": 1000, "U2": 1000}, result.Before())
		assert.Equal(t, map[string]int{"U1": 1032, "U2": 984}, result.After())
		assert.Equal(t, map[string]int{"U1": 1, "U2": 2}, result.Positions())
		assert.Equal(t, 32, result.Players[0].Change())

		require.Len(t, store.RecordGameCalls, 1)
		assert.Equal(t, "T1", store.RecordGameCalls[0].TeamID)

		assert.Equal(t, 1, metr.GamesRecorded())
		assert.Len(t, metr.RecordDurations(), 1)
		assert.Equal(t, 1, metr.EventsPublished("game-recorded"))

		events := ps.Events()
		require.Len(t, events, 1)
		assert.Equal(t, pubsub.EventGameRecorded, events[0].Type)
		assert.Equal(t, int64(42), events[0].GameID)
		assert.NotEmpty(t, events[0].ID)
		assert.True(t, events[0].Players[0].Gambled)
	})

	t.Run("invalid rankings never reach the store", func(t *testing.T) {
		store := rating.NewMock()
		metr := metrics.NewMock()
		p := New(store, metr, pubsub.NewMock())

		_, err := p.RecordGame("C1", "", [][]string{{"U1"}})
		assert.ErrorIs(t, err, rating.ErrInvalidGame)

		_, err = p.RecordGame("C1", "", [][]string{{"U1", "U2"}, {"U1"}})
		assert.ErrorIs(t, err, rating.ErrInvalidGame)

		assert.Empty(t, store.RecordGameCalls)
		assert.Equal(t, 2, metr.RecordFailed())
	})

	t.Run("storage failures are wrapped", func(t *testing.T) {
		store := rating.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock()
		p := New(store, metr, ps)
		store.RecordGameFunc = func(string, string, [][]string) (*rating.Game, error) {
			return nil, rating.ErrStorage
		}

		_, err := p.RecordGame("C1", "", [][]string{{"U1"}, {"U2"}})
		assert.ErrorIs(t, err, rating.ErrStorage)
		assert.Equal(t, 0, metr.GamesRecorded())
		assert.Empty(t, ps.SendMessageCalls)
	})

	t.Run("a failed publish does not fail the game", func(t *testing.T) {
		store := rating.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock()
		ps.SendMessageFunc = func(pubsub.EventType, any) error { return errors.New("unavailable") }
		p := New(store, metr, ps)

		_, err := p.RecordGame("C1", "", [][]string{{"U1"}, {"U2"}})
		require.NoError(t, err)
		assert.Equal(t, 0, metr.EventsPublished("game-recorded"))
	})
}

func TestProcessor_SimulateGame(t *testing.T) {
	store := rating.NewMock()
	metr := metrics.NewMock()
	ps := pubsub.NewMock()
	p := New(store, metr, ps)

	store.SimulateGameFunc = func(channelID string, rankings [][]string) (*rating.Simulation, error) {
		return &rating.Simulation{ChannelID: channelID, KFactor: 32, Players: []rating.PlayerGame{
			{UserID: "U1", RatingBefore: 1000, RatingAfter: 1016, Position: 1},
			{UserID: "U2", RatingBefore: 1000, RatingAfter: 984, Position: 2},
		}}, nil
	}

	result, err := p.SimulateGame("C1", "T1", [][]string{{"U1"}, {"U2"}})
	require.NoError(t, err)
	assert.True(t, result.Simulated)
	assert.Zero(t, result.GameID)
	assert.Equal(t, map[string]int{"U1": 1016, "U2": 984}, result.After())

	assert.Empty(t, store.RecordGameCalls)
	assert.Empty(t, ps.SendMessageCalls, "simulations are not published")
	assert.Equal(t, 1, metr.GamesSimulated())

	_, err = p.SimulateGame("C1", "", [][]string{{"U1"}, {"U1"}})
	assert.ErrorIs(t, err, rating.ErrInvalidGame)
	assert.Len(t, store.SimulateGameCalls, 1)
}

func TestProcessor_UndoLastGame(t *testing.T) {
	t.Run("returns the game's time", func(t *testing.T) {
		store := rating.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock()
		p := New(store, metr, ps)
		store.UndoLastGameFunc = func(string) (int64, error) { return 1700000000, nil }

		when, err := p.UndoLastGame("C1")
		require.NoError(t, err)
		assert.Equal(t, time.Unix(1700000000, 0).UTC(), when)
		assert.Equal(t, 1, metr.GamesUndone())

		events := ps.Events()
		require.Len(t, events, 1)
		assert.Equal(t, pubsub.EventGameUndone, events[0].Type)
	})

	t.Run("nothing to undo", func(t *testing.T) {
		store := rating.NewMock()
		metr := metrics.NewMock()
		p := New(store, metr, pubsub.NewMock())
		store.UndoLastGameFunc = func(string) (int64, error) { return 0, rating.ErrNotFound }

		_, err := p.UndoLastGame("C1")
		assert.ErrorIs(t, err, rating.ErrNotFound)
		assert.Equal(t, 0, metr.GamesUndone())
	})
}

func TestProcessor_ResetChannel(t *testing.T) {
	store := rating.NewMock()
	metr := metrics.NewMock()
	ps := pubsub.NewMock()
	p := New(store, metr, ps)
	store.ResetChannelFunc = func(string) (int, error) { return 3, nil }

	deleted, err := p.ResetChannel("C1")
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	assert.Equal(t, []string{"C1"}, store.ResetChannelCalls)
	assert.Equal(t, 1, metr.ChannelResets())

	events := ps.Events()
	require.Len(t, events, 1)
	assert.Equal(t, 3, events[0].GamesDeleted)
}

func TestRankingsFromPlayers(t *testing.T) {
	records := []rating.PlayerGame{
		{UserID: "a", Position: 1},
		{UserID: "b", Position: 2},
		{UserID: "c", Position: 2},
		{UserID: "d", Position: 4},
	}

	assert.Equal(t, [][]string{{"a"}, {"b", "c"}, {"d"}}, rankingsFromPlayers(records))
}

func TestProcessor_WithDatabase(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	metr := metrics.NewMock()
	p := New(rating.New(db), metr, pubsub.NewMock())

	gambling, err := p.ToggleGambling("U2", "C1")
	require.NoError(t, err)
	require.True(t, gambling)

	simulated, err := p.SimulateGame("C1", "T1", [][]string{{"U1"}, {"U2", "U3"}, {"U4"}})
	require.NoError(t, err)

	recorded, err := p.RecordGame("C1", "T1", [][]string{{"U1"}, {"U2", "U3"}, {"U4"}})
	require.NoError(t, err)
	assert.Equal(t, simulated.After(), recorded.After())
	assert.Equal(t, map[string]int{"U1": 1016, "U2": 1000, "U3": 1000, "U4": 984}, recorded.After())

	game, err := p.GetGame("C1", recorded.GameID)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"U1"}, {"U2", "U3"}, {"U4"}}, game.Rankings)

	r, err := p.GetRating("U1", "C1")
	require.NoError(t, err)
	assert.Equal(t, 1016, r)

	_, err = p.UndoLastGame("C1")
	require.NoError(t, err)

	leaderboard, err := p.GetLeaderboard("C1", 10)
	require.NoError(t, err)
	assert.Empty(t, leaderboard)

	require.ErrorIs(t, p.SetKFactor("C1", 0), rating.ErrInvalidArgument)
	k, err := p.GetKFactor("C1")
	require.NoError(t, err)
	assert.Equal(t, 32, k)
}
