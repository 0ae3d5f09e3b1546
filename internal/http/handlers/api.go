package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/slackelo/internal/processor"
	"github.com/mauv0809/slackelo/internal/rating"
)

// GameRequest is the body of a record or simulate call.
type GameRequest struct {
	TeamID   string     `json:"team_id,omitempty"`
	Rankings [][]string `json:"rankings"`
}

type KFactorRequest struct {
	KFactor int `json:"k_factor"`
}

type RatingResponse struct {
	UserID    string `json:"user_id"`
	ChannelID string `json:"channel_id"`
	Rating    int    `json:"rating"`
}

type HistoryResponse struct {
	UserID string                `json:"user_id"`
	Total  int                   `json:"total"`
	Games  []rating.HistoryEntry `json:"games"`
}

type KFactorResponse struct {
	ChannelID string `json:"channel_id"`
	KFactor   int    `json:"k_factor"`
}

type GambleResponse struct {
	UserID   string `json:"user_id"`
	Gambling bool   `json:"gambling"`
}

type UndoResponse struct {
	ChannelID string `json:"channel_id"`
	PlayedAt  string `json:"played_at"`
}

type ResetResponse struct {
	ChannelID    string `json:"channel_id"`
	GamesDeleted int    `json:"games_deleted"`
}

// queryInt reads a non-negative integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", rating.ErrInvalidArgument, name)
	}
	return n, nil
}

func LeaderboardHandler(proc *processor.Processor, leaderboardMax int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit", leaderboardMax)
		if err != nil {
			writeError(w, err)
			return
		}
		if leaderboardMax > 0 && limit > leaderboardMax {
			limit = leaderboardMax
		}

		entries, err := proc.GetLeaderboard(r.PathValue("channelID"), limit)
		if err != nil {
			writeError(w, err)
			return
		}
		if entries == nil {
			entries = []rating.LeaderboardEntry{}
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func RatingHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channelID, userID := r.PathValue("channelID"), r.PathValue("userID")
		current, err := proc.GetRating(userID, channelID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, RatingResponse{UserID: userID, ChannelID: channelID, Rating: current})
	}
}

func HistoryHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channelID, userID := r.PathValue("channelID"), r.PathValue("userID")
		limit, err := queryInt(r, "limit", historySize)
		if err != nil {
			writeError(w, err)
			return
		}
		offset, err := queryInt(r, "offset", 0)
		if err != nil {
			writeError(w, err)
			return
		}

		games, err := proc.GetHistory(userID, channelID, limit, offset)
		if err != nil {
			writeError(w, err)
			return
		}
		total, err := proc.GetHistoryCount(userID, channelID)
		if err != nil {
			writeError(w, err)
			return
		}
		if games == nil {
			games = []rating.HistoryEntry{}
		}
		writeJSON(w, http.StatusOK, HistoryResponse{UserID: userID, Total: total, Games: games})
	}
}

func StatisticsHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := proc.GetStatistics(r.PathValue("channelID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func GetKFactorHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channelID := r.PathValue("channelID")
		kFactor, err := proc.GetKFactor(channelID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, KFactorResponse{ChannelID: channelID, KFactor: kFactor})
	}
}

func SetKFactorHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channelID := r.PathValue("channelID")
		var req KFactorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, fmt.Errorf("%w: invalid JSON body: %v", rating.ErrInvalidArgument, err))
			return
		}
		if IsDryRunFromContext(r) {
			log.Info("Dry run: k-factor not updated", "channelID", channelID, "kFactor", req.KFactor)
			writeJSON(w, http.StatusOK, KFactorResponse{ChannelID: channelID, KFactor: req.KFactor})
			return
		}
		if err := proc.SetKFactor(channelID, req.KFactor); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, KFactorResponse{ChannelID: channelID, KFactor: req.KFactor})
	}
}

func GambleHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channelID, userID := r.PathValue("channelID"), r.PathValue("userID")
		gambling, err := proc.ToggleGambling(userID, channelID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, GambleResponse{UserID: userID, Gambling: gambling})
	}
}

// RecordGameHandler stores a game, or only simulates it when dry_run is set.
func RecordGameHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channelID := r.PathValue("channelID")
		var req GameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, fmt.Errorf("%w: invalid JSON body: %v", rating.ErrInvalidGame, err))
			return
		}

		if IsDryRunFromContext(r) {
			result, err := proc.SimulateGame(channelID, req.TeamID, req.Rankings)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, result)
			return
		}

		result, err := proc.RecordGame(channelID, req.TeamID, req.Rankings)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, result)
	}
}

func GetGameHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := strconv.ParseInt(r.PathValue("gameID"), 10, 64)
		if err != nil {
			writeError(w, fmt.Errorf("%w: game ID must be an integer", rating.ErrInvalidArgument))
			return
		}
		result, err := proc.GetGame(r.PathValue("channelID"), gameID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func UndoLastGameHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channelID := r.PathValue("channelID")
		playedAt, err := proc.UndoLastGame(channelID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, UndoResponse{ChannelID: channelID, PlayedAt: playedAt.Format("2006-01-02T15:04:05Z")})
	}
}

func ResetChannelHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channelID := r.PathValue("channelID")
		log.Warn("Resetting channel", "channelID", channelID)
		deleted, err := proc.ResetChannel(channelID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ResetResponse{ChannelID: channelID, GamesDeleted: deleted})
	}
}
