package processor

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/slackelo/internal/elo"
	"github.com/mauv0809/slackelo/internal/metrics"
	"github.com/mauv0809/slackelo/internal/pubsub"
	"github.com/mauv0809/slackelo/internal/rating"
)

// New creates a new Processor.
func New(store Store, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		store:   store,
		pubsub:  pubsub,
		metrics: metrics,
	}
}

// RecordGame stores a game for the channel and returns every player's rating
// before and after it.
func (p *Processor) RecordGame(channelID, teamID string, rankings [][]string) (*GameResult, error) {
	if err := elo.Validate(rankings); err != nil {
		p.metrics.IncRecordFailed()
		return nil, err
	}

	log.Info("Recording game", "channelID", channelID, "players", len(elo.Flatten(rankings)))
	startTime := time.Now()
	game, err := p.store.RecordGame(channelID, teamID, rankings)
	if err != nil {
		p.metrics.IncRecordFailed()
		log.Error("Failed to record game", "channelID", channelID, "error", err)
		return nil, fmt.Errorf("failed to record game: %w", err)
	}
	p.metrics.ObserveRecordDuration(time.Since(startTime).Seconds())
	p.metrics.IncGamesRecorded()

	result := &GameResult{
		GameID:    game.ID,
		ChannelID: channelID,
		Timestamp: game.Timestamp,
		Rankings:  rankings,
		Players:   toPlayerResults(game.Players),
	}

	event := pubsub.GameEvent{
		Type:      pubsub.EventGameRecorded,
		ChannelID: channelID,
		TeamID:    teamID,
		GameID:    game.ID,
		Timestamp: game.Timestamp,
	}
	for _, pg := range game.Players {
		event.Players = append(event.Players, pubsub.EventPlayer{
			UserID:       pg.UserID,
			RatingBefore: pg.RatingBefore,
			RatingAfter:  pg.RatingAfter,
			Position:     pg.Position,
			Gambled:      pg.Gambled,
		})
	}
	p.publish(event)

	return result, nil
}

// SimulateGame computes the same result as RecordGame without storing it.
func (p *Processor) SimulateGame(channelID, teamID string, rankings [][]string) (*GameResult, error) {
	if err := elo.Validate(rankings); err != nil {
		return nil, err
	}

	simulation, err := p.store.SimulateGame(channelID, rankings)
	if err != nil {
		log.Error("Failed to simulate game", "channelID", channelID, "teamID", teamID, "error", err)
		return nil, fmt.Errorf("failed to simulate game: %w", err)
	}
	p.metrics.IncGamesSimulated()
	log.Debug("Simulated game", "channelID", channelID, "kFactor", simulation.KFactor)

	return &GameResult{
		ChannelID: channelID,
		Simulated: true,
		Rankings:  rankings,
		Players:   toPlayerResults(simulation.Players),
	}, nil
}

// UndoLastGame removes the channel's most recent game and returns when it was played.
func (p *Processor) UndoLastGame(channelID string) (time.Time, error) {
	timestamp, err := p.store.UndoLastGame(channelID)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to undo game: %w", err)
	}
	p.metrics.IncGamesUndone()
	log.Info("Undid last game", "channelID", channelID, "timestamp", timestamp)

	p.publish(pubsub.GameEvent{
		Type:      pubsub.EventGameUndone,
		ChannelID: channelID,
		Timestamp: timestamp,
	})
	return time.Unix(timestamp, 0).UTC(), nil
}

// ResetChannel wipes every game and rating in the channel.
func (p *Processor) ResetChannel(channelID string) (int, error) {
	deleted, err := p.store.ResetChannel(channelID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset channel: %w", err)
	}
	p.metrics.IncChannelResets()

	p.publish(pubsub.GameEvent{
		Type:         pubsub.EventChannelReset,
		ChannelID:    channelID,
		Timestamp:    time.Now().Unix(),
		GamesDeleted: deleted,
	})
	return deleted, nil
}

func (p *Processor) GetGame(channelID string, gameID int64) (*GameResult, error) {
	game, err := p.store.GetGame(channelID, gameID)
	if err != nil {
		return nil, err
	}
	return &GameResult{
		GameID:    game.ID,
		ChannelID: game.ChannelID,
		Timestamp: game.Timestamp,
		Rankings:  rankingsFromPlayers(game.Players),
		Players:   toPlayerResults(game.Players),
	}, nil
}

// RegisterChannel makes sure the channel exists and remembers its team.
func (p *Processor) RegisterChannel(channelID, teamID string) (*rating.Channel, error) {
	return p.store.GetOrCreateChannel(channelID, teamID)
}

func (p *Processor) GetRating(userID, channelID string) (int, error) {
	return p.store.GetRating(userID, channelID)
}

func (p *Processor) GetLeaderboard(channelID string, limit int) ([]rating.LeaderboardEntry, error) {
	return p.store.GetLeaderboard(channelID, limit)
}

func (p *Processor) GetHistory(userID, channelID string, limit, offset int) ([]rating.HistoryEntry, error) {
	return p.store.GetHistory(userID, channelID, limit, offset)
}

func (p *Processor) GetHistoryCount(userID, channelID string) (int, error) {
	return p.store.GetHistoryCount(userID, channelID)
}

func (p *Processor) GetKFactor(channelID string) (int, error) {
	return p.store.GetKFactor(channelID)
}

func (p *Processor) SetKFactor(channelID string, kFactor int) error {
	return p.store.SetKFactor(channelID, kFactor)
}

// ToggleGambling flips whether the player's next game counts double and
// returns the new state.
func (p *Processor) ToggleGambling(userID, channelID string) (bool, error) {
	gambling, err := p.store.ToggleGambling(userID, channelID)
	if err != nil {
		return false, err
	}
	log.Info("Toggled gambling", "userID", userID, "channelID", channelID, "gambling", gambling)
	return gambling, nil
}

func (p *Processor) GetStatistics(channelID string) (*rating.Statistics, error) {
	return p.store.GetStatistics(channelID)
}

// publish sends the event and only logs failures; the ratings are already committed.
func (p *Processor) publish(event pubsub.GameEvent) {
	event.ID = uuid.NewString()
	if err := p.pubsub.SendMessage(event.Type, event); err != nil {
		log.Error("Failed to publish game event", "type", event.Type, "channelID", event.ChannelID, "error", err)
		return
	}
	p.metrics.IncEventsPublished(string(event.Type))
}

func toPlayerResults(records []rating.PlayerGame) []PlayerResult {
	results := make([]PlayerResult, len(records))
	for i, pg := range records {
		results[i] = PlayerResult{
			UserID:   pg.UserID,
			Before:   pg.RatingBefore,
			After:    pg.RatingAfter,
			Position: pg.Position,
			Gambled:  pg.Gambled,
		}
	}
	return results
}

// rankingsFromPlayers rebuilds tie groups from records sorted by position.
func rankingsFromPlayers(records []rating.PlayerGame) [][]string {
	var rankings [][]string
	lastPosition := 0
	for _, pg := range records {
		if pg.Position != lastPosition {
			rankings = append(rankings, nil)
			lastPosition = pg.Position
		}
		rankings[len(rankings)-1] = append(rankings[len(rankings)-1], pg.UserID)
	}
	return rankings
}
