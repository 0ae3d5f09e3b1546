package elo

import (
	"errors"
	"math"
)

const (
	// DefaultKFactor is the k-factor a channel starts with.
	DefaultKFactor = 32
	// DefaultRating is the rating a player starts with in every channel.
	DefaultRating = 1000

	deviation = 400.0
)

// ErrInvalidGame is returned when a ranking cannot describe a game.
var ErrInvalidGame = errors.New("invalid game")

// ExpectedScore returns the logistic expectation of self scoring against other.
// E = 1 / (1 + 10^((other - self) / 400))
func ExpectedScore(self, other int) float64 {
	exponent := float64(other-self) / deviation
	return 1.0 / (1.0 + math.Pow(10, exponent))
}

// ComputeDeltas calculates the rating change of every participant in a game.
//
// ratings and positions are parallel slices; equal positions are draws and a
// lower position beats a higher one. Every ordered pair of participants is
// compared, each pairwise contribution is divided by N-1, and the per-player
// sums are rounded once with math.Round (half away from zero). The result is
// in input order.
//
// Callers validate the game first; mismatched slices, fewer than two
// participants or a non-positive k-factor panic.
func ComputeDeltas(ratings, positions []int, kFactor int) []int {
	n := len(ratings)
	if n != len(positions) {
		panic("elo: ratings and positions differ in length")
	}
	if n < 2 {
		panic("elo: a game needs at least two participants")
	}
	if kFactor <= 0 {
		panic("elo: k-factor must be positive")
	}

	k := float64(kFactor)
	comparisons := float64(n - 1)
	changes := make([]float64, n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}

			switch {
			case positions[i] == positions[j]:
				changes[i] += k * (0.5 - ExpectedScore(ratings[i], ratings[j])) / comparisons
				changes[j] += k * (0.5 - ExpectedScore(ratings[j], ratings[i])) / comparisons
			case positions[i] < positions[j]:
				changes[i] += k * (1 - ExpectedScore(ratings[i], ratings[j])) / comparisons
				changes[j] += k * (0 - ExpectedScore(ratings[j], ratings[i])) / comparisons
			}
		}
	}

	deltas := make([]int, n)
	for i, change := range changes {
		deltas[i] = int(math.Round(change))
	}
	return deltas
}
