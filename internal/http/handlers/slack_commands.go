package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/slackelo/internal/metrics"
	"github.com/mauv0809/slackelo/internal/processor"
	slackmsg "github.com/mauv0809/slackelo/internal/slack"
	"github.com/slack-go/slack"
)

const (
	defaultLeaderboardSize = 10
	historySize            = 10
)

// commandActions names what each command was doing when it failed.
var commandActions = map[string]string{
	slackmsg.CommandGame:        "creating game",
	slackmsg.CommandSimulate:    "simulating game",
	slackmsg.CommandLeaderboard: "fetching leaderboard",
	slackmsg.CommandUndo:        "undoing game",
	slackmsg.CommandRating:      "fetching rating",
	slackmsg.CommandHistory:     "fetching history",
	slackmsg.CommandKFactor:     "setting k-factor",
	slackmsg.CommandGamble:      "toggling gambling",
	slackmsg.CommandStats:       "fetching statistics",
}

// SlackCommandHandler answers every slash command the bot is installed with.
// With dry_run set, /game only simulates.
func SlackCommandHandler(proc *processor.Processor, metricsSvc metrics.Metrics, leaderboardMax int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			log.Error("Failed to parse slash command", "error", err)
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		cmd.Text = strings.TrimSpace(cmd.Text)

		log.Info("Received slash command", "command", cmd.Command, "channelID", cmd.ChannelID, "userID", cmd.UserID)
		metricsSvc.IncSlashCommand(cmd.Command)

		msg, err := runCommand(proc, cmd, leaderboardMax, IsDryRunFromContext(r))
		if err != nil {
			metricsSvc.IncSlashCommandFailed(cmd.Command)
			log.Error("Slash command failed", "command", cmd.Command, "channelID", cmd.ChannelID, "error", err)
			msg = slackmsg.Ephemeral(fmt.Sprintf("Error %s: %s", commandActions[cmd.Command], err))
		}
		respondWithSlackMsg(w, msg)
	}
}

func runCommand(proc *processor.Processor, cmd slack.SlashCommand, leaderboardMax int, dryRun bool) (slack.Message, error) {
	switch cmd.Command {
	case slackmsg.CommandGame:
		if dryRun {
			return simulateCommand(proc, cmd, slackmsg.CommandGame)
		}
		rankings := slackmsg.ParseRankings(cmd.Text)
		if len(rankings) == 0 {
			return slackmsg.FormatUsage(slackmsg.CommandGame), nil
		}
		result, err := proc.RecordGame(cmd.ChannelID, cmd.TeamID, rankings)
		if err != nil {
			return slack.Message{}, err
		}
		return slackmsg.FormatGameResult(result), nil

	case slackmsg.CommandSimulate:
		return simulateCommand(proc, cmd, slackmsg.CommandSimulate)

	case slackmsg.CommandHelp:
		return slackmsg.FormatHelp(), nil
	}

	if _, ok := commandActions[cmd.Command]; !ok {
		log.Warn("Unknown slash command", "command", cmd.Command)
		return slackmsg.FormatHelp(), nil
	}

	// The remaining commands remember which team the channel belongs to.
	if _, err := proc.RegisterChannel(cmd.ChannelID, cmd.TeamID); err != nil {
		return slack.Message{}, err
	}

	switch cmd.Command {
	case slackmsg.CommandLeaderboard:
		entries, err := proc.GetLeaderboard(cmd.ChannelID, leaderboardLimit(cmd.Text, leaderboardMax))
		if err != nil {
			return slack.Message{}, err
		}
		return slackmsg.FormatLeaderboard(entries), nil

	case slackmsg.CommandUndo:
		playedAt, err := proc.UndoLastGame(cmd.ChannelID)
		if err != nil {
			return slack.Message{}, err
		}
		return slackmsg.FormatUndo(playedAt), nil

	case slackmsg.CommandRating:
		userID := targetUser(cmd)
		r, err := proc.GetRating(userID, cmd.ChannelID)
		if err != nil {
			return slack.Message{}, err
		}
		return slackmsg.FormatRating(userID, r), nil

	case slackmsg.CommandHistory:
		userID := targetUser(cmd)
		history, err := proc.GetHistory(userID, cmd.ChannelID, historySize, 0)
		if err != nil {
			return slack.Message{}, err
		}
		total, err := proc.GetHistoryCount(userID, cmd.ChannelID)
		if err != nil {
			return slack.Message{}, err
		}
		return slackmsg.FormatHistory(userID, history, total), nil

	case slackmsg.CommandKFactor:
		return kFactorCommand(proc, cmd)

	case slackmsg.CommandGamble:
		gambling, err := proc.ToggleGambling(cmd.UserID, cmd.ChannelID)
		if err != nil {
			return slack.Message{}, err
		}
		return slackmsg.FormatGamble(cmd.UserID, gambling), nil

	case slackmsg.CommandStats:
		stats, err := proc.GetStatistics(cmd.ChannelID)
		if err != nil {
			return slack.Message{}, err
		}
		return slackmsg.FormatStatistics(stats), nil
	}
	return slackmsg.FormatHelp(), nil
}

func simulateCommand(proc *processor.Processor, cmd slack.SlashCommand, name string) (slack.Message, error) {
	rankings := slackmsg.ParseRankings(cmd.Text)
	if len(rankings) == 0 {
		return slackmsg.FormatUsage(name), nil
	}
	result, err := proc.SimulateGame(cmd.ChannelID, cmd.TeamID, rankings)
	if err != nil {
		return slack.Message{}, err
	}
	return slackmsg.FormatGameResult(result), nil
}

func kFactorCommand(proc *processor.Processor, cmd slack.SlashCommand) (slack.Message, error) {
	current, err := proc.GetKFactor(cmd.ChannelID)
	if err != nil {
		return slack.Message{}, err
	}
	if cmd.Text == "" {
		return slackmsg.FormatKFactor(current), nil
	}

	kFactor, err := strconv.Atoi(cmd.Text)
	if err != nil || kFactor <= 0 {
		return slackmsg.FormatKFactorInvalid(), nil
	}
	if err := proc.SetKFactor(cmd.ChannelID, kFactor); err != nil {
		return slack.Message{}, err
	}
	log.Info("Updated k-factor", "channelID", cmd.ChannelID, "from", current, "to", kFactor)
	return slackmsg.FormatKFactorUpdated(current, kFactor), nil
}

// targetUser is the first mentioned user, or the caller when nobody is mentioned.
func targetUser(cmd slack.SlashCommand) string {
	if ids := slackmsg.ExtractUserIDs(cmd.Text); len(ids) > 0 {
		return ids[0]
	}
	return cmd.UserID
}

func leaderboardLimit(text string, maxLimit int) int {
	limit := defaultLeaderboardSize
	if n, err := strconv.Atoi(text); err == nil && n > 0 {
		limit = n
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return limit
}
