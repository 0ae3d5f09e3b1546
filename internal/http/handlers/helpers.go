package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/slackelo/internal/rating"
	"github.com/slack-go/slack"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// Announcer posts a message to a channel outside of a slash command response.
type Announcer interface {
	PostMessage(channelID string, message slack.Message, dryRun bool) (string, error)
}

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// statusFor maps rating errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, rating.ErrInvalidGame), errors.Is(err, rating.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, rating.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	} else {
		log.Debug("Rejected request", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
