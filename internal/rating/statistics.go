package rating

const (
	// minVarianceGames is how many games a player needs before their
	// volatility counts.
	minVarianceGames = 3
	// minClimb is the smallest rise worth reporting as a climb.
	minClimb = 100
)

type playerTotals struct {
	games      int
	wins       int
	lastPlaces int
	changes    []int

	streak     int
	bestStreak int

	lowest    int
	bestClimb int
}

// ComputeStatistics summarises participation records given in chronological
// order. Ties on a value go to the smallest user ID.
func ComputeStatistics(records []PlayerGame) *Statistics {
	stats := &Statistics{}
	if len(records) == 0 {
		return stats
	}

	lastPosition := make(map[int64]int)
	games := make(map[int64]struct{})
	for _, pg := range records {
		games[pg.GameID] = struct{}{}
		if pg.Position > lastPosition[pg.GameID] {
			lastPosition[pg.GameID] = pg.Position
		}
	}
	stats.TotalGames = len(games)

	totals := make(map[string]*playerTotals)
	for _, pg := range records {
		t, ok := totals[pg.UserID]
		if !ok {
			t = &playerTotals{lowest: pg.RatingBefore}
			totals[pg.UserID] = t
		}

		change := pg.Change()
		t.games++
		t.changes = append(t.changes, change)

		if pg.Position == 1 {
			t.wins++
			t.streak++
			t.bestStreak = max(t.bestStreak, t.streak)
		} else {
			t.streak = 0
		}
		// A game where everyone tied has no loser.
		if pg.Position == lastPosition[pg.GameID] && pg.Position != 1 {
			t.lastPlaces++
		}

		t.lowest = min(t.lowest, pg.RatingBefore)
		t.bestClimb = max(t.bestClimb, pg.RatingAfter-t.lowest)
		t.lowest = min(t.lowest, pg.RatingAfter)

		stats.HighestRating = higher(stats.HighestRating, pg.UserID, pg.RatingAfter)
		stats.LowestRating = lower(stats.LowestRating, pg.UserID, pg.RatingAfter)
		if change > 0 {
			stats.BiggestGain = higher(stats.BiggestGain, pg.UserID, change)
		}
		if change < 0 {
			stats.BiggestLoss = lower(stats.BiggestLoss, pg.UserID, change)
		}
	}

	for userID, t := range totals {
		stats.MostGames = higher(stats.MostGames, userID, t.games)
		if t.wins > 0 {
			stats.MostWins = higher(stats.MostWins, userID, t.wins)
		}
		if t.lastPlaces > 0 {
			stats.MostLastPlaces = higher(stats.MostLastPlaces, userID, t.lastPlaces)
		}
		if t.bestStreak > 0 {
			stats.LongestWinStreak = higher(stats.LongestWinStreak, userID, t.bestStreak)
		}
		if t.bestClimb > minClimb {
			stats.BiggestClimb = higher(stats.BiggestClimb, userID, t.bestClimb)
		}
		if t.games >= minVarianceGames {
			v := variance(t.changes)
			stats.MostVolatile = moreVariance(stats.MostVolatile, userID, v)
			stats.MostConsistent = lessVariance(stats.MostConsistent, userID, v)
		}
	}

	return stats
}

// variance is the population variance of values.
func variance(values []int) float64 {
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	mean := sum / float64(len(values))

	var squares float64
	for _, v := range values {
		d := float64(v) - mean
		squares += d * d
	}
	return squares / float64(len(values))
}

func higher(current *PlayerStat, userID string, value int) *PlayerStat {
	if current == nil || value > current.Value || (value == current.Value && userID < current.UserID) {
		return &PlayerStat{UserID: userID, Value: value}
	}
	return current
}

func lower(current *PlayerStat, userID string, value int) *PlayerStat {
	if current == nil || value < current.Value || (value == current.Value && userID < current.UserID) {
		return &PlayerStat{UserID: userID, Value: value}
	}
	return current
}

func moreVariance(current *PlayerVariance, userID string, v float64) *PlayerVariance {
	if current == nil || v > current.Variance || (v == current.Variance && userID < current.UserID) {
		return &PlayerVariance{UserID: userID, Variance: v}
	}
	return current
}

func lessVariance(current *PlayerVariance, userID string, v float64) *PlayerVariance {
	if current == nil || v < current.Variance || (v == current.Variance && userID < current.UserID) {
		return &PlayerVariance{UserID: userID, Variance: v}
	}
	return current
}
