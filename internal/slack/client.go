package slack

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
)

// NewClient creates a new Slack client wrapper. An empty token gives a client
// that refuses to post.
func NewClient(token string) *SlackClient {
	if token == "" {
		return &SlackClient{}
	}
	return &SlackClient{
		api: slack.New(token),
	}
}

// NewClientWithAPI creates a new Slack client with a custom API client. Used for testing.
func NewClientWithAPI(api *slack.Client) *SlackClient {
	return &SlackClient{
		api: api,
	}
}

// PostMessage posts the message's blocks to the channel and returns the message timestamp.
func (c *SlackClient) PostMessage(channelID string, message slack.Message, dryRun bool) (string, error) {
	if c.api == nil || channelID == "" {
		log.Warn("Slack client or channel ID is not configured. Skipping message.")
		return "", errors.New("slack client or channel ID is not configured")
	}

	if dryRun {
		log.Info("Dry run mode: Slack message not sent.", "channelID", channelID, "msg", message.Text)
		return "", nil
	}

	_, timestamp, err := c.api.PostMessage(channelID,
		slack.MsgOptionText(message.Text, false),
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
	)
	if err != nil {
		log.Error("Failed to send Slack message", "error", err, "channelID", channelID)
		return "", err
	}
	return timestamp, nil
}
