package elo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositions(t *testing.T) {
	t.Run("strict order", func(t *testing.T) {
		positions := Positions([][]string{{"a"}, {"b"}, {"c"}})
		assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, positions)
	})

	t.Run("ties skip the following positions", func(t *testing.T) {
		positions := Positions([][]string{{"a"}, {"b", "c"}, {"d"}})
		assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 2, "d": 4}, positions)
	})

	t.Run("tie for first", func(t *testing.T) {
		positions := Positions([][]string{{"a", "b", "c"}, {"d"}})
		assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1, "d": 4}, positions)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		rankings [][]string
		valid    bool
	}{
		{"two players", [][]string{{"a"}, {"b"}}, true},
		{"two tied players", [][]string{{"a", "b"}}, true},
		{"no players", nil, false},
		{"one player", [][]string{{"a"}}, false},
		{"one player and an empty group", [][]string{{"a"}, {}}, false},
		{"duplicate across groups", [][]string{{"a"}, {"b"}, {"a"}}, false},
		{"duplicate inside a tie", [][]string{{"a", "a"}, {"b"}}, false},
		{"blank player ID", [][]string{{"a"}, {""}}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Validate(test.rankings)
			if test.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidGame)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "d"}, Flatten([][]string{{"a"}, {"b", "c"}, {"d"}}))
	assert.Empty(t, Flatten(nil))
}
