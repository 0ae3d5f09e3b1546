package slack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractUserIDs(t *testing.T) {
	assert.Equal(t, []string{"U1", "U2"}, ExtractUserIDs("<@U1|alice> beat <@U2>"))
	assert.Empty(t, ExtractUserIDs("no mentions here"))
	assert.Empty(t, ExtractUserIDs("<@lowercase>"))
	assert.Empty(t, ExtractUserIDs("<@U1abc>"), "a malformed mention must not be truncated to a valid ID")
	assert.Equal(t, []string{"U2"}, ExtractUserIDs("<@U1abc> <@U2|bob>"))
}

func TestParseRankings(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected [][]string
	}{
		{"strict order", "<@U1> <@U2> <@U3>", [][]string{{"U1"}, {"U2"}, {"U3"}}},
		{"tie without spaces", "<@U1> <@U2>=<@U3> <@U4>", [][]string{{"U1"}, {"U2", "U3"}, {"U4"}}},
		{"tie with spaces", "<@U1> <@U2> = <@U3> <@U4>", [][]string{{"U1"}, {"U2", "U3"}, {"U4"}}},
		{"space after equals", "<@U1> <@U2>= <@U3>", [][]string{{"U1"}, {"U2", "U3"}}},
		{"space before equals", "<@U1> <@U2> =<@U3>", [][]string{{"U1"}, {"U2", "U3"}}},
		{"three way tie", "<@U1> = <@U2> = <@U3> <@U4>", [][]string{{"U1", "U2", "U3"}, {"U4"}}},
		{"mentions with names", "<@U1|alice smith>=<@U2|bob> <@U3|carol>", [][]string{{"U1", "U2"}, {"U3"}}},
		{"leading equals is ignored", "= <@U1> <@U2>", [][]string{{"U1"}, {"U2"}}},
		{"no mentions", "alice bob", nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, ParseRankings(test.text))
		})
	}
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 101: "101st", 111: "111th",
	}
	for n, expected := range tests {
		assert.Equal(t, expected, Ordinal(n))
	}
}
