package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/slackelo/internal/database"
	"github.com/mauv0809/slackelo/internal/rating"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           "slackelo.db",
		"SEED_CHANNEL":      "CSEED",
		"SEED_TEAM":         "TSEED",
		"SEED_PLAYERS":      "8",
		"SEED_GAMES":        "500",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func mustInt(cfg map[string]string, key string) int {
	n, err := strconv.Atoi(cfg[key])
	if err != nil || n <= 0 {
		log.Fatalf("Error: %s must be a positive integer, got %q", key, cfg[key])
	}
	return n
}

// randomRankings picks between two and six players and orders them, tying
// neighbours now and then.
func randomRankings(rng *rand.Rand, players []string) [][]string {
	size := 2 + rng.Intn(min(len(players), 6)-1)
	picked := rng.Perm(len(players))[:size]

	var rankings [][]string
	for i, idx := range picked {
		if i > 0 && rng.Intn(5) == 0 {
			rankings[len(rankings)-1] = append(rankings[len(rankings)-1], players[idx])
			continue
		}
		rankings = append(rankings, []string{players[idx]})
	}
	return rankings
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()
	numPlayers := mustInt(cfg, "SEED_PLAYERS")
	numGames := mustInt(cfg, "SEED_GAMES")
	if numPlayers < 2 {
		log.Fatalf("Error: SEED_PLAYERS must be at least 2")
	}

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := rating.New(db)
	channelID := cfg["SEED_CHANNEL"]

	players := make([]string, numPlayers)
	for i := range players {
		players[i] = fmt.Sprintf("USEED%03d", i+1)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	log.Info("Preparing to record seeded games...", "channelID", channelID, "players", numPlayers, "games", numGames)
	startTime := time.Now()

	for i := 0; i < numGames; i++ {
		// Roughly one game in ten is played by a gambler.
		if rng.Intn(10) == 0 {
			if err := store.SetGambling(players[rng.Intn(numPlayers)], channelID, true); err != nil {
				log.Fatalf("Failed to set gambling: %s", err)
			}
		}
		if _, err := store.RecordGame(channelID, cfg["SEED_TEAM"], randomRankings(rng, players)); err != nil {
			log.Fatalf("Failed to record game %d: %s", i+1, err)
		}
		if (i+1)%100 == 0 {
			log.Info("Recorded batch", "completed", i+1, "total", numGames)
		}
	}

	leaderboard, err := store.GetLeaderboard(channelID, 3)
	if err != nil {
		log.Fatalf("Failed to read leaderboard: %s", err)
	}
	for i, entry := range leaderboard {
		log.Info("Leader", "rank", i+1, "userID", entry.UserID, "rating", entry.Rating, "games", entry.GamesPlayed)
	}

	log.Info("Successfully recorded all seeded games.", "duration", time.Since(startTime))
}
