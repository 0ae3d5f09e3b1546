package rating

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/slackelo/internal/elo"
)

// New creates a new RatingStore.
func New(db *sql.DB) RatingStore {
	return &store{
		db: db,
	}
}

func (s *store) GetOrCreatePlayer(userID string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return getOrCreatePlayer(s.db, userID)
}

// GetOrCreateChannel returns the channel, creating it with the default k-factor
// if needed. The team ID is only stored the first time a non-empty one is seen.
func (s *store) GetOrCreateChannel(channelID, teamID string) (*Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return getOrCreateChannel(s.db, channelID, teamID)
}

func (s *store) GetOrCreateChannelPlayer(userID, channelID string) (*ChannelPlayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return getOrCreateChannelPlayer(s.db, userID, channelID)
}

// GetKFactor returns the channel's k-factor, or the default for a channel that
// has never been seen.
func (s *store) GetKFactor(channelID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	channel, err := findChannel(s.db, channelID)
	if err != nil {
		return 0, err
	}
	if channel == nil {
		return elo.DefaultKFactor, nil
	}
	return channel.KFactor, nil
}

func (s *store) SetKFactor(channelID string, kFactor int) error {
	if kFactor <= 0 {
		return fmt.Errorf("%w: k-factor must be positive, got %d", ErrInvalidArgument, kFactor)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := getOrCreateChannel(s.db, channelID, ""); err != nil {
		return err
	}
	if _, err := s.db.Exec(`UPDATE channels SET k_factor = ? WHERE channel_id = ?`, kFactor, channelID); err != nil {
		return storageError("update k-factor", err)
	}
	log.Info("Updated k-factor", "channelID", channelID, "kFactor", kFactor)
	return nil
}

func (s *store) SetGambling(userID, channelID string, gambling bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := getOrCreateChannelPlayer(s.db, userID, channelID); err != nil {
		return err
	}
	if _, err := s.db.Exec(`UPDATE channel_players SET gambling = ? WHERE user_id = ? AND channel_id = ?`, gambling, userID, channelID); err != nil {
		return storageError("update gambling flag", err)
	}
	return nil
}

func (s *store) IsGambling(userID, channelID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	membership, err := findChannelPlayer(s.db, userID, channelID)
	if err != nil {
		return false, err
	}
	return membership.Gambling, nil
}

// ToggleGambling flips the player's gambling flag and returns the new value.
func (s *store) ToggleGambling(userID, channelID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return false, storageError("begin transaction", err)
	}
	defer tx.Rollback()

	membership, err := getOrCreateChannelPlayer(tx, userID, channelID)
	if err != nil {
		return false, err
	}
	gambling := !membership.Gambling
	if _, err := tx.Exec(`UPDATE channel_players SET gambling = ? WHERE user_id = ? AND channel_id = ?`, gambling, userID, channelID); err != nil {
		return false, storageError("update gambling flag", err)
	}
	if err := tx.Commit(); err != nil {
		return false, storageError("commit transaction", err)
	}
	return gambling, nil
}

// RecordGame stores a game and moves every participant's rating in a single
// transaction. A gambling player's change is doubled and their flag is cleared.
func (s *store) RecordGame(channelID, teamID string, rankings [][]string) (*Game, error) {
	if err := elo.Validate(rankings); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, storageError("begin transaction", err)
	}
	defer tx.Rollback()

	channel, err := getOrCreateChannel(tx, channelID, teamID)
	if err != nil {
		return nil, err
	}

	players := elo.Flatten(rankings)
	positions := elo.Positions(rankings)
	memberships := make([]*ChannelPlayer, len(players))
	for i, userID := range players {
		memberships[i], err = getOrCreateChannelPlayer(tx, userID, channelID)
		if err != nil {
			return nil, err
		}
	}

	timestamp := time.Now().Unix()
	result, err := tx.Exec(`INSERT INTO games (channel_id, timestamp) VALUES (?, ?)`, channelID, timestamp)
	if err != nil {
		return nil, storageError("insert game", err)
	}
	gameID, err := result.LastInsertId()
	if err != nil {
		return nil, storageError("read game id", err)
	}

	game := &Game{ID: gameID, ChannelID: channelID, Timestamp: timestamp}
	game.Players = applyDeltas(memberships, positions, channel.KFactor)
	for i := range game.Players {
		pg := &game.Players[i]
		pg.GameID = gameID
		if _, err := tx.Exec(`
			INSERT INTO player_games (user_id, game_id, rating_before, rating_after, position, gambled)
			VALUES (?, ?, ?, ?, ?, ?)
		`, pg.UserID, gameID, pg.RatingBefore, pg.RatingAfter, pg.Position, pg.Gambled); err != nil {
			return nil, storageError("insert player game", err)
		}
		if _, err := tx.Exec(`
			UPDATE channel_players SET rating = ?, gambling = 0
			WHERE user_id = ? AND channel_id = ?
		`, pg.RatingAfter, pg.UserID, channelID); err != nil {
			return nil, storageError("update rating", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, storageError("commit transaction", err)
	}
	log.Info("Recorded game", "channelID", channelID, "gameID", gameID, "players", len(game.Players), "kFactor", channel.KFactor)
	return game, nil
}

// SimulateGame computes what RecordGame would do without writing anything.
// Players and channels that do not exist yet are treated as new.
func (s *store) SimulateGame(channelID string, rankings [][]string) (*Simulation, error) {
	if err := elo.Validate(rankings); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	kFactor := elo.DefaultKFactor
	channel, err := findChannel(s.db, channelID)
	if err != nil {
		return nil, err
	}
	if channel != nil {
		kFactor = channel.KFactor
	}

	players := elo.Flatten(rankings)
	memberships := make([]*ChannelPlayer, len(players))
	for i, userID := range players {
		memberships[i], err = findChannelPlayer(s.db, userID, channelID)
		if err != nil {
			return nil, err
		}
	}

	return &Simulation{
		ChannelID: channelID,
		KFactor:   kFactor,
		Players:   applyDeltas(memberships, elo.Positions(rankings), kFactor),
	}, nil
}

// applyDeltas turns current memberships into participation records.
func applyDeltas(memberships []*ChannelPlayer, positions map[string]int, kFactor int) []PlayerGame {
	ratings := make([]int, len(memberships))
	places := make([]int, len(memberships))
	for i, m := range memberships {
		ratings[i] = m.Rating
		places[i] = positions[m.UserID]
	}

	deltas := elo.ComputeDeltas(ratings, places, kFactor)

	records := make([]PlayerGame, len(memberships))
	for i, m := range memberships {
		delta := deltas[i]
		if m.Gambling {
			delta *= 2
		}
		records[i] = PlayerGame{
			UserID:       m.UserID,
			RatingBefore: m.Rating,
			RatingAfter:  m.Rating + delta,
			Position:     places[i],
			Gambled:      m.Gambling,
		}
	}
	return records
}

// UndoLastGame deletes the channel's most recent game and restores the ratings
// its players had before it. It returns the deleted game's timestamp.
func (s *store) UndoLastGame(channelID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, storageError("begin transaction", err)
	}
	defer tx.Rollback()

	var gameID, timestamp int64
	err = tx.QueryRow(`
		SELECT id, timestamp FROM games
		WHERE channel_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`, channelID).Scan(&gameID, &timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: no games to undo in channel %s", ErrNotFound, channelID)
	}
	if err != nil {
		return 0, storageError("find last game", err)
	}

	records, err := playerGames(tx, gameID)
	if err != nil {
		return 0, err
	}
	for _, pg := range records {
		if _, err := tx.Exec(`UPDATE channel_players SET rating = ? WHERE user_id = ? AND channel_id = ?`, pg.RatingBefore, pg.UserID, channelID); err != nil {
			return 0, storageError("restore rating", err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM player_games WHERE game_id = ?`, gameID); err != nil {
		return 0, storageError("delete player games", err)
	}
	if _, err := tx.Exec(`DELETE FROM games WHERE id = ?`, gameID); err != nil {
		return 0, storageError("delete game", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, storageError("commit transaction", err)
	}
	log.Info("Undid game", "channelID", channelID, "gameID", gameID, "players", len(records))
	return timestamp, nil
}

func (s *store) GetGame(channelID string, gameID int64) (*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game := &Game{ID: gameID, ChannelID: channelID}
	err := s.db.QueryRow(`SELECT timestamp FROM games WHERE id = ? AND channel_id = ?`, gameID, channelID).Scan(&game.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: game %d in channel %s", ErrNotFound, gameID, channelID)
	}
	if err != nil {
		return nil, storageError("get game", err)
	}

	game.Players, err = playerGames(s.db, gameID)
	if err != nil {
		return nil, err
	}
	return game, nil
}

// GetRating returns the player's rating in the channel, creating the membership
// at the default rating if it does not exist.
func (s *store) GetRating(userID, channelID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	membership, err := getOrCreateChannelPlayer(s.db, userID, channelID)
	if err != nil {
		return 0, err
	}
	return membership.Rating, nil
}

// GetLeaderboard lists players who have played in the channel, best first.
func (s *store) GetLeaderboard(channelID string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidArgument, limit)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT cp.user_id, cp.rating, COUNT(pg.game_id)
		FROM channel_players cp
		JOIN player_games pg ON pg.user_id = cp.user_id
		JOIN games g ON g.id = pg.game_id AND g.channel_id = cp.channel_id
		WHERE cp.channel_id = ?
		GROUP BY cp.user_id, cp.rating
		ORDER BY cp.rating DESC, cp.user_id ASC
		LIMIT ?
	`, channelID, limit)
	if err != nil {
		return nil, storageError("query leaderboard", err)
	}
	defer rows.Close()

	entries := []LeaderboardEntry{}
	for rows.Next() {
		var entry LeaderboardEntry
		if err := rows.Scan(&entry.UserID, &entry.Rating, &entry.GamesPlayed); err != nil {
			return nil, storageError("scan leaderboard", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate leaderboard", err)
	}
	return entries, nil
}

// GetHistory returns a page of the player's games in the channel, most recent first.
func (s *store) GetHistory(userID, channelID string, limit, offset int) ([]HistoryEntry, error) {
	if limit <= 0 || offset < 0 {
		return nil, fmt.Errorf("%w: limit %d offset %d", ErrInvalidArgument, limit, offset)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT pg.game_id, pg.rating_before, pg.rating_after, pg.position, g.timestamp, pg.gambled
		FROM player_games pg
		JOIN games g ON g.id = pg.game_id
		WHERE pg.user_id = ? AND g.channel_id = ?
		ORDER BY g.timestamp DESC, g.id DESC
		LIMIT ? OFFSET ?
	`, userID, channelID, limit, offset)
	if err != nil {
		return nil, storageError("query history", err)
	}
	defer rows.Close()

	history := []HistoryEntry{}
	for rows.Next() {
		var entry HistoryEntry
		if err := rows.Scan(&entry.GameID, &entry.RatingBefore, &entry.RatingAfter, &entry.Position, &entry.Timestamp, &entry.Gambled); err != nil {
			return nil, storageError("scan history", err)
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate history", err)
	}
	return history, nil
}

func (s *store) GetHistoryCount(userID, channelID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*)
		FROM player_games pg
		JOIN games g ON g.id = pg.game_id
		WHERE pg.user_id = ? AND g.channel_id = ?
	`, userID, channelID).Scan(&count)
	if err != nil {
		return 0, storageError("count history", err)
	}
	return count, nil
}

// GetStatistics computes the channel's statistics over its full history.
func (s *store) GetStatistics(channelID string) (*Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT pg.user_id, pg.game_id, pg.rating_before, pg.rating_after, pg.position
		FROM player_games pg
		JOIN games g ON g.id = pg.game_id
		WHERE g.channel_id = ?
		ORDER BY g.timestamp ASC, g.id ASC
	`, channelID)
	if err != nil {
		return nil, storageError("query statistics", err)
	}
	defer rows.Close()

	var records []PlayerGame
	for rows.Next() {
		var pg PlayerGame
		if err := rows.Scan(&pg.UserID, &pg.GameID, &pg.RatingBefore, &pg.RatingAfter, &pg.Position); err != nil {
			return nil, storageError("scan statistics", err)
		}
		records = append(records, pg)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate statistics", err)
	}
	return ComputeStatistics(records), nil
}

// ResetChannel deletes every game and membership in the channel and returns how
// many games were removed. The channel itself and its k-factor are kept.
func (s *store) ResetChannel(channelID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, storageError("begin transaction", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM games WHERE channel_id = ?`, channelID).Scan(&count); err != nil {
		return 0, storageError("count games", err)
	}
	if _, err := tx.Exec(`DELETE FROM player_games WHERE game_id IN (SELECT id FROM games WHERE channel_id = ?)`, channelID); err != nil {
		return 0, storageError("delete player games", err)
	}
	if _, err := tx.Exec(`DELETE FROM games WHERE channel_id = ?`, channelID); err != nil {
		return 0, storageError("delete games", err)
	}
	if _, err := tx.Exec(`DELETE FROM channel_players WHERE channel_id = ?`, channelID); err != nil {
		return 0, storageError("delete channel players", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, storageError("commit transaction", err)
	}
	log.Warn("Reset channel", "channelID", channelID, "games", count)
	return count, nil
}

func getOrCreatePlayer(q querier, userID string) (*Player, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user ID", ErrInvalidArgument)
	}
	if _, err := q.Exec(`INSERT INTO players (user_id) VALUES (?) ON CONFLICT(user_id) DO NOTHING`, userID); err != nil {
		return nil, storageError("insert player", err)
	}
	return &Player{UserID: userID}, nil
}

func getOrCreateChannel(q querier, channelID, teamID string) (*Channel, error) {
	if channelID == "" {
		return nil, fmt.Errorf("%w: empty channel ID", ErrInvalidArgument)
	}
	_, err := q.Exec(`
		INSERT INTO channels (channel_id, team_id) VALUES (?, NULLIF(?, ''))
		ON CONFLICT(channel_id) DO UPDATE SET team_id = COALESCE(channels.team_id, excluded.team_id)
	`, channelID, teamID)
	if err != nil {
		return nil, storageError("insert channel", err)
	}

	channel, err := findChannel(q, channelID)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, storageError("get channel", sql.ErrNoRows)
	}
	return channel, nil
}

// findChannel returns nil without an error when the channel does not exist.
func findChannel(q querier, channelID string) (*Channel, error) {
	var channel Channel
	var teamID sql.NullString
	err := q.QueryRow(`SELECT channel_id, team_id, k_factor FROM channels WHERE channel_id = ?`, channelID).Scan(&channel.ID, &teamID, &channel.KFactor)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("get channel", err)
	}
	channel.TeamID = teamID.String
	return &channel, nil
}

func getOrCreateChannelPlayer(q querier, userID, channelID string) (*ChannelPlayer, error) {
	if _, err := getOrCreatePlayer(q, userID); err != nil {
		return nil, err
	}
	if _, err := getOrCreateChannel(q, channelID, ""); err != nil {
		return nil, err
	}
	_, err := q.Exec(`
		INSERT INTO channel_players (user_id, channel_id, rating) VALUES (?, ?, ?)
		ON CONFLICT(user_id, channel_id) DO NOTHING
	`, userID, channelID, elo.DefaultRating)
	if err != nil {
		return nil, storageError("insert channel player", err)
	}
	return findChannelPlayer(q, userID, channelID)
}

// findChannelPlayer returns a default membership, without storing it, when the
// player has none in the channel.
func findChannelPlayer(q querier, userID, channelID string) (*ChannelPlayer, error) {
	membership := &ChannelPlayer{UserID: userID, ChannelID: channelID, Rating: elo.DefaultRating}
	err := q.QueryRow(`
		SELECT rating, gambling FROM channel_players WHERE user_id = ? AND channel_id = ?
	`, userID, channelID).Scan(&membership.Rating, &membership.Gambling)
	if errors.Is(err, sql.ErrNoRows) {
		return membership, nil
	}
	if err != nil {
		return nil, storageError("get channel player", err)
	}
	return membership, nil
}

func playerGames(q querier, gameID int64) ([]PlayerGame, error) {
	rows, err := q.Query(`
		SELECT user_id, game_id, rating_before, rating_after, position, gambled
		FROM player_games
		WHERE game_id = ?
		ORDER BY position ASC, user_id ASC
	`, gameID)
	if err != nil {
		return nil, storageError("query player games", err)
	}
	defer rows.Close()

	var records []PlayerGame
	for rows.Next() {
		var pg PlayerGame
		if err := rows.Scan(&pg.UserID, &pg.GameID, &pg.RatingBefore, &pg.RatingAfter, &pg.Position, &pg.Gambled); err != nil {
			return nil, storageError("scan player game", err)
		}
		records = append(records, pg)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate player games", err)
	}
	return records, nil
}
