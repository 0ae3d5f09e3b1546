package config

// Config holds all configuration for the application.
type Config struct {
	DBName         string
	Port           string
	Slack          SlackConfig
	Turso          TursoConfig
	ProjectID      string
	LeaderboardMax int
	// APIToken guards the admin API and the Pub/Sub push endpoint. Empty disables the check.
	APIToken string
}
type SlackConfig struct {
	// Token is optional and only needed to post announcements outside slash command responses.
	Token         string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
