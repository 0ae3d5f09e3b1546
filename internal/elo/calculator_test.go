package elo

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedScore(t *testing.T) {
	tests := []struct {
		name     string
		self     int
		other    int
		expected float64
	}{{
		"equal ratings are a coin flip",
		1000,
		1000,
		0.5,
	}, {
		"400 points ahead is ten to one",
		1400,
		1000,
		10.0 / 11.0,
	}, {
		"400 points behind is one to ten",
		1000,
		1400,
		1.0 / 11.0,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.expected, ExpectedScore(test.self, test.other), 1e-12)
		})
	}
}

func TestExpectedScore_Saturates(t *testing.T) {
	high := ExpectedScore(3000, 100)
	low := ExpectedScore(100, 3000)

	assert.Less(t, high, 1.0)
	assert.Greater(t, low, 0.0)
	assert.InDelta(t, 1.0, high+low, 1e-12)
}

func TestComputeDeltas_Golden(t *testing.T) {
	tests := []struct {
		name      string
		ratings   []int
		positions []int
		kFactor   int
		expected  []int
	}{{
		"1v1 at equal ratings",
		[]int{1000, 1000},
		[]int{1, 2},
		32,
		[]int{16, -16},
	}, {
		"four players with a tie for second",
		[]int{1000, 1000, 1000, 1000},
		[]int{1, 2, 2, 4},
		32,
		[]int{16, 0, 0, -16},
	}, {
		"four players strict order",
		[]int{1000, 1000, 1000, 1000},
		[]int{1, 2, 3, 4},
		32,
		[]int{16, 5, -5, -16},
	}, {
		"favourite wins",
		[]int{1200, 1000},
		[]int{1, 2},
		32,
		[]int{8, -8},
	}, {
		"underdog wins",
		[]int{1000, 1200},
		[]int{1, 2},
		32,
		[]int{24, -24},
	}, {
		"draw between unequal ratings",
		[]int{1200, 1000},
		[]int{1, 1},
		32,
		[]int{-17, 17},
	}, {
		"spread field in order",
		[]int{1500, 1400, 1300, 1200},
		[]int{1, 2, 3, 4},
		32,
		[]int{8, 3, -3, -8},
	}, {
		"tie for first with uneven ratings",
		[]int{1000, 1016, 984},
		[]int{1, 1, 3},
		32,
		[]int{8, 7, -15},
	}, {
		"everyone tied",
		[]int{1100, 1000, 900},
		[]int{1, 1, 1},
		32,
		[]int{-13, 0, 13},
	}, {
		"extreme gap",
		[]int{3000, 100},
		[]int{2, 1},
		32,
		[]int{-32, 32},
	}, {
		"higher k-factor",
		[]int{1000, 1000, 1000},
		[]int{1, 2, 3},
		64,
		[]int{32, 0, -32},
	}, {
		"lower k-factor",
		[]int{1000, 1000},
		[]int{1, 2},
		16,
		[]int{8, -8},
	}, {
		"slight favourite wins",
		[]int{1016, 984},
		[]int{1, 2},
		32,
		[]int{15, -15},
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, ComputeDeltas(test.ratings, test.positions, test.kFactor))
		})
	}
}

func TestComputeDeltas_RoundsSumsNotPairs(t *testing.T) {
	// Each pairwise change is 16/3; rounding pairs first would give the winner 15.
	assert.Equal(t, []int{16, 5, -5, -16}, ComputeDeltas([]int{1000, 1000, 1000, 1000}, []int{1, 2, 3, 4}, 32))
}

func TestComputeDeltas_DrawMovesTowardsEachOther(t *testing.T) {
	deltas := ComputeDeltas([]int{1300, 1100}, []int{1, 1}, 32)

	assert.Negative(t, deltas[0], "higher rated player should lose points on a draw")
	assert.Positive(t, deltas[1], "lower rated player should gain points on a draw")
}

func TestComputeDeltas_SumIsNearZero(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := 2 + rng.Intn(9)
		ratings := make([]int, n)
		positions := make([]int, n)
		position := 1
		for i := 0; i < n; i++ {
			ratings[i] = 600 + rng.Intn(1200)
			// Occasionally keep the same position to create ties.
			if i > 0 && rng.Intn(3) > 0 {
				position = i + 1
			}
			positions[i] = position
		}

		deltas := ComputeDeltas(ratings, positions, 32)
		sum := 0
		for _, d := range deltas {
			sum += d
		}
		require.LessOrEqual(t, math.Abs(float64(sum)), float64(n)*0.5, "ratings=%v positions=%v deltas=%v", ratings, positions, deltas)
	}
}

func TestComputeDeltas_PanicsOnProgrammerErrors(t *testing.T) {
	assert.Panics(t, func() { ComputeDeltas([]int{1000}, []int{1}, 32) })
	assert.Panics(t, func() { ComputeDeltas([]int{1000, 1000}, []int{1}, 32) })
	assert.Panics(t, func() { ComputeDeltas([]int{1000, 1000}, []int{1, 2}, 0) })
}
