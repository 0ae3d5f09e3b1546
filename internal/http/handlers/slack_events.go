package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/slackelo/internal/processor"
	slackmsg "github.com/mauv0809/slackelo/internal/slack"
)

type eventPayload struct {
	Type      string `json:"type"`
	Challenge string `json:"challenge,omitempty"`
	TeamID    string `json:"team_id,omitempty"`
	Event     struct {
		Type    string `json:"type"`
		Channel string `json:"channel,omitempty"`
		User    string `json:"user,omitempty"`
	} `json:"event,omitempty"`
}

// SlackEventsHandler handles the Events API. Channels the bot is added to are
// registered with their team, and mentioning the bot replies with the help text.
func SlackEventsHandler(proc *processor.Processor, announcer Announcer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}

		var payload eventPayload
		if err := json.Unmarshal(bodyBytes, &payload); err != nil {
			log.Error("Failed to unmarshal event payload", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		// Challenge verification for the initial webhook setup.
		if payload.Type == "url_verification" {
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(payload.Challenge))
			return
		}

		if payload.Type == "event_callback" {
			log.Info("Received event", "type", payload.Event.Type, "channelID", payload.Event.Channel)
			switch payload.Event.Type {
			case "member_joined_channel":
				if _, err := proc.RegisterChannel(payload.Event.Channel, payload.TeamID); err != nil {
					// Don't return error to Slack to avoid retries
					log.Error("Failed to register channel", "channelID", payload.Event.Channel, "error", err)
				}
			case "app_mention":
				if announcer == nil {
					break
				}
				if _, err := announcer.PostMessage(payload.Event.Channel, slackmsg.FormatHelp(), IsDryRunFromContext(r)); err != nil {
					log.Warn("Failed to reply to mention", "channelID", payload.Event.Channel, "error", err)
				}
			}
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
