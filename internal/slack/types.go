package slack

import (
	"github.com/slack-go/slack"
)

// SlackClient is a wrapper around the official slack-go client.
type SlackClient struct {
	api *slack.Client
}

// Command names the bot answers to.
const (
	CommandGame        = "/game"
	CommandSimulate    = "/simulate"
	CommandLeaderboard = "/leaderboard"
	CommandUndo        = "/undo"
	CommandRating      = "/rating"
	CommandHistory     = "/history"
	CommandKFactor     = "/kfactor"
	CommandGamble      = "/gamble"
	CommandStats       = "/stats"
	CommandHelp        = "/help"
)
