package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const defaultLeaderboardMax = 25

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	// A helper function to get a required env var.
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	getOptional := func(key string) string {
		value, _ := lookup(key)
		return value
	}

	cfg := Config{
		DBName: getEnv("DB_NAME"),
		Port:   getEnv("PORT"),
		Slack: SlackConfig{
			Token:         getOptional("SLACK_BOT_TOKEN"),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET"),
		},
		Turso: TursoConfig{
			PrimaryURL: getOptional("TURSO_PRIMARY_URL"),
			AuthToken:  getOptional("TURSO_AUTH_TOKEN"),
		},
		ProjectID:      getOptional("GCP_PROJECT"),
		LeaderboardMax: defaultLeaderboardMax,
		APIToken:       getOptional("API_TOKEN"),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	if raw := getOptional("LEADERBOARD_MAX"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return Config{}, fmt.Errorf("LEADERBOARD_MAX must be a positive integer, got %q", raw)
		}
		cfg.LeaderboardMax = limit
	}
	return cfg, nil
}
