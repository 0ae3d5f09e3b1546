package rating

import (
	"errors"
	"fmt"

	"github.com/mauv0809/slackelo/internal/elo"
)

var (
	// ErrInvalidGame is returned when a ranking has fewer than two players or
	// repeats a player.
	ErrInvalidGame = elo.ErrInvalidGame
	// ErrInvalidArgument is returned for bad caller input such as a k-factor <= 0.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned when there is nothing to undo or look up.
	ErrNotFound = errors.New("not found")
	// ErrStorage wraps every failure of the backing database.
	ErrStorage = errors.New("storage failure")
)

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
