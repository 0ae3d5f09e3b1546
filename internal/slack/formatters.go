package slack

import (
	"fmt"
	"strings"
	"time"

	"github.com/mauv0809/slackelo/internal/processor"
	"github.com/mauv0809/slackelo/internal/rating"
	"github.com/slack-go/slack"
)

const (
	gambleIndicator = " (🎲 2x!)"
	timeLayout      = "2006-01-02 15:04:05"
)

// textMessage builds a single mrkdwn section message. The text doubles as the
// notification fallback.
func textMessage(responseType, text string) slack.Message {
	msg := slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
	msg.ResponseType = responseType
	msg.Text = text
	return msg
}

// InChannel is a message everyone in the channel sees.
func InChannel(text string) slack.Message {
	return textMessage(slack.ResponseTypeInChannel, text)
}

// Ephemeral is a message only the user who ran the command sees.
func Ephemeral(text string) slack.Message {
	return textMessage(slack.ResponseTypeEphemeral, text)
}

func formatChange(change int) string {
	if change > 0 {
		return fmt.Sprintf("+%d", change)
	}
	return fmt.Sprintf("%d", change)
}

func formatTime(timestamp int64) string {
	return time.Unix(timestamp, 0).UTC().Format(timeLayout)
}

func placeEmoji(position int, lastGroup bool) string {
	switch {
	case lastGroup:
		return "💩 "
	case position == 1:
		return "🥇 "
	case position == 2:
		return "🥈 "
	case position == 3:
		return "🥉 "
	}
	return ""
}

// FormatGameResult lists every player's rating change, grouped by place.
// Recorded games are shown to the channel, simulations only to the caller.
func FormatGameResult(result *processor.GameResult) slack.Message {
	var b strings.Builder
	if result.Simulated {
		b.WriteString("Simulation results (no changes saved):\n")
	} else {
		b.WriteString("Game recorded! Results:\n")
	}

	players := make(map[string]processor.PlayerResult, len(result.Players))
	for _, p := range result.Players {
		players[p.UserID] = p
	}

	position := 1
	for i, group := range result.Rankings {
		lastGroup := len(result.Rankings) > 1 && i == len(result.Rankings)-1
		emoji := placeEmoji(position, lastGroup)
		for _, userID := range group {
			p := players[userID]
			fmt.Fprintf(&b, "%s*%s place*: %s - *%d → %d* _(%s)_", emoji, Ordinal(position), Mention(userID), p.Before, p.After, formatChange(p.Change()))
			if p.Gambled {
				b.WriteString(gambleIndicator)
			}
			b.WriteString("\n")
		}
		position += len(group)
	}

	if result.Simulated {
		b.WriteString("\n_This is a simulation only. Use `/game` to record an actual game._")
		return Ephemeral(b.String())
	}
	return InChannel(b.String())
}

func FormatLeaderboard(entries []rating.LeaderboardEntry) slack.Message {
	if len(entries) == 0 {
		return InChannel("No ratings found for this channel yet. Start playing games with `/game`!")
	}

	blocks := make([]slack.Block, 0, len(entries)+1)
	headerText := slack.NewTextBlockObject("plain_text", "🏆 Channel Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var lines []string
	for i, entry := range entries {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇 "
		case 2:
			medal = "🥈 "
		case 3:
			medal = "🥉 "
		}
		games := "games"
		if entry.GamesPlayed == 1 {
			games = "game"
		}
		line := fmt.Sprintf("%d. %s%s: %d (%d %s)", rank, medal, Mention(entry.UserID), entry.Rating, entry.GamesPlayed, games)
		lines = append(lines, line)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", line, false, false), nil, nil))
	}

	msg := slack.NewBlockMessage(blocks...)
	msg.ResponseType = slack.ResponseTypeInChannel
	msg.Text = "*Channel Leaderboard*\n" + strings.Join(lines, "\n")
	return msg
}

func FormatUndo(playedAt time.Time) slack.Message {
	return InChannel(fmt.Sprintf("Last game from %s UTC has been undone. All player ratings have been reverted.", playedAt.UTC().Format(timeLayout)))
}

func FormatRating(userID string, r int) slack.Message {
	return Ephemeral(fmt.Sprintf("%s's current rating in this channel is %d.", Mention(userID), r))
}

// FormatHistory shows the given games oldest first, noting how many older
// games were left out of total.
func FormatHistory(userID string, history []rating.HistoryEntry, total int) slack.Message {
	if len(history) == 0 {
		return Ephemeral(fmt.Sprintf("No game history found for %s in this channel.", Mention(userID)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Game history for %s:*\n", Mention(userID))
	if total > len(history) {
		fmt.Fprintf(&b, "• _+%d previous games_\n", total-len(history))
	}
	for i := len(history) - 1; i >= 0; i-- {
		entry := history[i]
		fmt.Fprintf(&b, "• %s UTC: %s place - *%d → %d* _(%s)_", formatTime(entry.Timestamp), Ordinal(entry.Position), entry.RatingBefore, entry.RatingAfter, formatChange(entry.Change()))
		if entry.Gambled {
			b.WriteString(gambleIndicator)
		}
		b.WriteString("\n")
	}
	return Ephemeral(b.String())
}

func FormatKFactor(kFactor int) slack.Message {
	return InChannel(fmt.Sprintf("The current k-factor for this channel is *%d*.\n"+
		"This affects how quickly ratings change after games.\n"+
		"• The standard value is 32\n"+
		"• Higher values (e.g., 64): Ratings change more quickly\n"+
		"• Lower values (e.g., 16): Ratings change more slowly\n"+
		"Use `/kfactor [value]` to set a new value.", kFactor))
}

func FormatKFactorUpdated(oldKFactor, newKFactor int) slack.Message {
	return InChannel(fmt.Sprintf("The k-factor for this channel has been set from %d to *%d*.", oldKFactor, newKFactor))
}

func FormatKFactorInvalid() slack.Message {
	return InChannel("The k-factor must be a positive integer.\n" +
		"Recommended values: 16 (slow changes), 32 (standard), 64 (rapid changes)")
}

func FormatGamble(userID string, gambling bool) slack.Message {
	if gambling {
		return InChannel(fmt.Sprintf("%s is now gambling! 🎲\nTheir next rating change in this channel will be doubled (win big or lose big)!", Mention(userID)))
	}
	return InChannel(fmt.Sprintf("%s is no longer gambling.\nTheir next rating change will be normal.", Mention(userID)))
}

// FormatStatistics shows every statistic that has a holder.
func FormatStatistics(stats *rating.Statistics) slack.Message {
	if stats.TotalGames == 0 {
		return InChannel("No games have been played in this channel yet. Start playing games with `/game`!")
	}

	var lines []string
	add := func(label string, stat *rating.PlayerStat, format string) {
		if stat != nil {
			lines = append(lines, fmt.Sprintf("• *%s*: %s "+format, label, Mention(stat.UserID), stat.Value))
		}
	}
	add("Highest rating", stats.HighestRating, "(%d)")
	add("Lowest rating", stats.LowestRating, "(%d)")
	add("Biggest gain", stats.BiggestGain, "(+%d in one game)")
	add("Biggest loss", stats.BiggestLoss, "(%d in one game)")
	add("Most wins", stats.MostWins, "(%d)")
	add("Most last places", stats.MostLastPlaces, "(%d)")
	add("Most games", stats.MostGames, "(%d)")
	add("Longest win streak", stats.LongestWinStreak, "(%d in a row)")
	add("Biggest climb", stats.BiggestClimb, "(+%d from their low)")
	if v := stats.MostVolatile; v != nil {
		lines = append(lines, fmt.Sprintf("• *Most volatile*: %s (variance %.1f)", Mention(v.UserID), v.Variance))
	}
	if v := stats.MostConsistent; v != nil {
		lines = append(lines, fmt.Sprintf("• *Most consistent*: %s (variance %.1f)", Mention(v.UserID), v.Variance))
	}

	header := slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "📊 Channel Statistics 📊", true, false))
	summary := fmt.Sprintf("*%d games played*", stats.TotalGames)
	body := strings.Join(lines, "\n")

	msg := slack.NewBlockMessage(
		header,
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", summary, false, false), nil, nil),
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", body, false, false), nil, nil),
	)
	msg.ResponseType = slack.ResponseTypeInChannel
	msg.Text = summary + "\n" + body
	return msg
}

func FormatHelp() slack.Message {
	commands := strings.Join([]string{
		"• `/game @player1 @player2 @player3` - Record a game with players in order of ranking (winner first)",
		"• `/game @player1=@player2 @player3` - Record a game with ties (player1 and player2 tied for first)",
		"• `/simulate @player1 @player2 @player3` - Simulate a game to see rating changes without saving",
		"• `/leaderboard [limit]` - Show channel leaderboard (optional limit parameter)",
		"• `/rating [@player]` - Show your rating or another player's rating",
		"• `/history [@player]` - View your game history or another player's history",
		"• `/kfactor [value]` - View or set the k-factor for this channel",
		"• `/gamble` - Toggle doubling your next rating change (win big or lose big)",
		"• `/stats` - Show channel records and statistics",
		"• `/undo` - Undo the last game in the channel",
		"• `/help` - Show this help message",
	}, "\n")

	msg := slack.NewBlockMessage(
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "Slackelo Help", false, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", "Slackelo is an Elo rating bot for tracking competitive games with two or more players in Slack channels.", false, false), nil, nil),
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", "*Available Commands:*", false, false), nil, nil),
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", commands, false, false), nil, nil),
	)
	msg.ResponseType = slack.ResponseTypeEphemeral
	msg.Text = "Slackelo Help"
	return msg
}

// FormatUsage explains the ranking syntax for /game and /simulate.
func FormatUsage(command string) slack.Message {
	return Ephemeral(fmt.Sprintf("Please provide player information. Format: `%s @player1 @player2 @player3` or `%s @player1=@player2 @player3` for ties.", command, command))
}

// FormatChannelReset announces that a channel's ratings were wiped.
func FormatChannelReset(gamesDeleted int) slack.Message {
	return InChannel(fmt.Sprintf("All ratings in this channel have been reset. %d games were removed.", gamesDeleted))
}
