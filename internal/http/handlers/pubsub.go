package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/slackelo/internal/pubsub"
	slackmsg "github.com/mauv0809/slackelo/internal/slack"
)

// GameEventsHandler receives game events from a Pub/Sub push subscription.
// Channel resets are announced in the channel they wiped.
func GameEventsHandler(pubsubClient pubsub.PubSubClient, announcer Announcer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received game event message", "body", string(bodyBytes))

		var pushMsg pubsub.PushMessage
		if err := json.Unmarshal(bodyBytes, &pushMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var event pubsub.GameEvent
		if err := pubsubClient.ProcessMessage(rawData, &event); err != nil {
			log.Error("Failed to decode game event", "error", err)
			http.Error(w, "Invalid game event", http.StatusBadRequest)
			return
		}
		log.Info("Received game event", "id", event.ID, "type", event.Type, "channelID", event.ChannelID, "gameID", event.GameID)

		if event.Type == pubsub.EventChannelReset && announcer != nil {
			// A failed announcement is not retried; the reset already happened.
			if _, err := announcer.PostMessage(event.ChannelID, slackmsg.FormatChannelReset(event.GamesDeleted), IsDryRunFromContext(r)); err != nil {
				log.Warn("Failed to announce channel reset", "channelID", event.ChannelID, "error", err)
			}
		}
		w.Write([]byte("OK"))
	}
}
