package elo

import "fmt"

// Flatten returns the player IDs of a ranking in finishing order.
func Flatten(rankings [][]string) []string {
	var players []string
	for _, group := range rankings {
		players = append(players, group...)
	}
	return players
}

// Positions maps every player to their finishing position. Tied players share
// a position and the next group starts after all of them, so a two-way tie for
// first is followed by third place.
func Positions(rankings [][]string) map[string]int {
	positions := make(map[string]int)
	position := 1
	for _, group := range rankings {
		for _, playerID := range group {
			positions[playerID] = position
		}
		position += len(group)
	}
	return positions
}

// Validate checks that a ranking has at least two players, no blank IDs and no
// player in more than one place.
func Validate(rankings [][]string) error {
	players := Flatten(rankings)
	if len(players) < 2 {
		return fmt.Errorf("%w: a game must have at least 2 players", ErrInvalidGame)
	}

	seen := make(map[string]struct{}, len(players))
	for _, playerID := range players {
		if playerID == "" {
			return fmt.Errorf("%w: empty player ID", ErrInvalidGame)
		}
		if _, ok := seen[playerID]; ok {
			return fmt.Errorf("%w: player %s appears in multiple positions", ErrInvalidGame, playerID)
		}
		seen[playerID] = struct{}{}
	}
	return nil
}
