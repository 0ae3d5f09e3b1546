package slack

import (
	"fmt"
	"regexp"
	"strings"
)

// mentionPattern matches <@U123> and <@U123|name>.
var mentionPattern = regexp.MustCompile(`<@([A-Z0-9]+)(?:\|[^>]*)?>`)

// ExtractUserIDs returns the user IDs of every mention in text, in order.
func ExtractUserIDs(text string) []string {
	var ids []string
	for _, match := range mentionPattern.FindAllStringSubmatch(text, -1) {
		ids = append(ids, match[1])
	}
	return ids
}

// ParseRankings turns "<@A> <@B>=<@C> <@D>" into [[A] [B C] [D]]. Mentions joined
// by "=" tie, with or without spaces around it; anything else between mentions
// starts the next place.
func ParseRankings(text string) [][]string {
	var rankings [][]string
	last := -1
	for _, loc := range mentionPattern.FindAllStringSubmatchIndex(text, -1) {
		userID := text[loc[2]:loc[3]]
		tied := last >= 0 && strings.Contains(text[last:loc[0]], "=")
		if tied && len(rankings) > 0 {
			rankings[len(rankings)-1] = append(rankings[len(rankings)-1], userID)
		} else {
			rankings = append(rankings, []string{userID})
		}
		last = loc[1]
	}
	return rankings
}

// OrdinalSuffix returns "st", "nd", "rd" or "th" for n.
func OrdinalSuffix(n int) string {
	if n%100 >= 10 && n%100 <= 20 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// Ordinal formats n as 1st, 2nd, 11th and so on.
func Ordinal(n int) string {
	return fmt.Sprintf("%d%s", n, OrdinalSuffix(n))
}

// Mention formats a user ID so Slack renders it as a mention.
func Mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}
