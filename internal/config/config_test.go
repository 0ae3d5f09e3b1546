package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{
		"DB_NAME":              "slackelo.db",
		"PORT":                 "8080",
		"SLACK_SIGNING_SECRET": "secret",
		"GCP_PROJECT":          "my-project",
		"API_TOKEN":            "s3cret",
	}))

	require.NoError(t, err)
	assert.Equal(t, "slackelo.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "secret", cfg.Slack.SigningSecret)
	assert.Empty(t, cfg.Slack.Token)
	assert.Empty(t, cfg.Turso.PrimaryURL)
	assert.Equal(t, "my-project", cfg.ProjectID)
	assert.Equal(t, 25, cfg.LeaderboardMax)
	assert.Equal(t, "s3cret", cfg.APIToken)
}

func TestFromEnv_MissingRequired(t *testing.T) {
	_, err := FromEnv(lookupFrom(map[string]string{"PORT": "8080"}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_NAME")
	assert.Contains(t, err.Error(), "SLACK_SIGNING_SECRET")
}

func TestFromEnv_LeaderboardMax(t *testing.T) {
	env := map[string]string{
		"DB_NAME":              "slackelo.db",
		"PORT":                 "8080",
		"SLACK_SIGNING_SECRET": "secret",
		"LEADERBOARD_MAX":      "10",
	}
	cfg, err := FromEnv(lookupFrom(env))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.LeaderboardMax)

	env["LEADERBOARD_MAX"] = "-1"
	_, err = FromEnv(lookupFrom(env))
	assert.Error(t, err)
}
