package slack

import (
	"testing"
	"time"

	"github.com/mauv0809/slackelo/internal/processor"
	"github.com/mauv0809/slackelo/internal/rating"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatGameResult(t *testing.T) {
	result := &processor.GameResult{
		GameID:   1,
		Rankings: [][]string{{"U1"}, {"U2", "U3"}, {"U4"}},
		Players: []processor.PlayerResult{
			{UserID: "U1", Before: 1000, After: 1032, Position: 1, Gambled: true},
			{UserID: "U2", Before: 1000, After: 1000, Position: 2},
			{UserID: "U3", Before: 1000, After: 1000, Position: 2},
			{UserID: "U4", Before: 1000, After: 984, Position: 4},
		},
	}

	msg := FormatGameResult(result)

	assert.Equal(t, slack.ResponseTypeInChannel, msg.ResponseType)
	assert.Equal(t, "Game recorded! Results:\n"+
		"🥇 *1st place*: <@U1> - *1000 → 1032* _(+32)_ (🎲 2x!)\n"+
		"🥈 *2nd place*: <@U2> - *1000 → 1000* _(0)_\n"+
		"🥈 *2nd place*: <@U3> - *1000 → 1000* _(0)_\n"+
		"💩 *4th place*: <@U4> - *1000 → 984* _(-16)_\n", msg.Text)
	require.Len(t, msg.Blocks.BlockSet, 1)
}

func TestFormatGameResult_Simulation(t *testing.T) {
	result := &processor.GameResult{
		Simulated: true,
		Rankings:  [][]string{{"U1", "U2"}},
		Players: []processor.PlayerResult{
			{UserID: "U1", Before: 1100, After: 1087, Position: 1},
			{UserID: "U2", Before: 900, After: 913, Position: 1},
		},
	}

	msg := FormatGameResult(result)

	assert.Equal(t, slack.ResponseTypeEphemeral, msg.ResponseType)
	assert.Contains(t, msg.Text, "Simulation results (no changes saved)")
	assert.Contains(t, msg.Text, "🥇 *1st place*: <@U2> - *900 → 913* _(+13)_")
	assert.NotContains(t, msg.Text, "💩", "a single tie group has no last place")
	assert.Contains(t, msg.Text, "This is a simulation only")
}

func TestFormatLeaderboard(t *testing.T) {
	msg := FormatLeaderboard(nil)
	assert.Contains(t, msg.Text, "No ratings found")

	msg = FormatLeaderboard([]rating.LeaderboardEntry{
		{UserID: "U1", Rating: 1016, GamesPlayed: 1},
		{UserID: "U2", Rating: 984, GamesPlayed: 3},
	})
	assert.Equal(t, slack.ResponseTypeInChannel, msg.ResponseType)
	assert.Equal(t, "*Channel Leaderboard*\n1. 🥇 <@U1>: 1016 (1 game)\n2. 🥈 <@U2>: 984 (3 games)", msg.Text)
	require.Len(t, msg.Blocks.BlockSet, 3)
	header, ok := msg.Blocks.BlockSet[0].(*slack.HeaderBlock)
	require.True(t, ok)
	assert.Contains(t, header.Text.Text, "Leaderboard")
}

func TestFormatHistory(t *testing.T) {
	msg := FormatHistory("U1", nil, 0)
	assert.Equal(t, "No game history found for <@U1> in this channel.", msg.Text)

	history := []rating.HistoryEntry{
		{GameID: 3, RatingBefore: 1016, RatingAfter: 1048, Position: 1, Timestamp: 1700000100, Gambled: true},
		{GameID: 2, RatingBefore: 1000, RatingAfter: 1016, Position: 1, Timestamp: 1700000000},
	}
	msg = FormatHistory("U1", history, 12)

	assert.Equal(t, slack.ResponseTypeEphemeral, msg.ResponseType)
	assert.Equal(t, "*Game history for <@U1>:*\n"+
		"• _+10 previous games_\n"+
		"• 2023-11-14 22:13:20 UTC: 1st place - *1000 → 1016* _(+16)_\n"+
		"• 2023-11-14 22:15:00 UTC: 1st place - *1016 → 1048* _(+32)_ (🎲 2x!)\n", msg.Text)
}

func TestFormatUndo(t *testing.T) {
	msg := FormatUndo(time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC))

	assert.Equal(t, "Last game from 2024-03-01 12:30:00 UTC has been undone. All player ratings have been reverted.", msg.Text)
	assert.Equal(t, slack.ResponseTypeInChannel, msg.ResponseType)
}

func TestFormatGamble(t *testing.T) {
	assert.Contains(t, FormatGamble("U1", true).Text, "<@U1> is now gambling! 🎲")
	assert.Contains(t, FormatGamble("U1", false).Text, "<@U1> is no longer gambling.")
}

func TestFormatStatistics(t *testing.T) {
	msg := FormatStatistics(&rating.Statistics{})
	assert.Contains(t, msg.Text, "No games have been played")

	msg = FormatStatistics(&rating.Statistics{
		TotalGames:     4,
		HighestRating:  &rating.PlayerStat{UserID: "U1", Value: 1030},
		BiggestLoss:    &rating.PlayerStat{UserID: "U2", Value: -20},
		MostConsistent: &rating.PlayerVariance{UserID: "U2", Variance: 213},
	})
	assert.Contains(t, msg.Text, "*4 games played*")
	assert.Contains(t, msg.Text, "• *Highest rating*: <@U1> (1030)")
	assert.Contains(t, msg.Text, "• *Biggest loss*: <@U2> (-20 in one game)")
	assert.Contains(t, msg.Text, "• *Most consistent*: <@U2> (variance 213.0)")
	assert.NotContains(t, msg.Text, "Most volatile")
	assert.Len(t, msg.Blocks.BlockSet, 3)
}

func TestFormatHelp(t *testing.T) {
	msg := FormatHelp()

	assert.Equal(t, slack.ResponseTypeEphemeral, msg.ResponseType)
	assert.Len(t, msg.Blocks.BlockSet, 4)
}
