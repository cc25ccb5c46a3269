package config

// Config holds all configuration for the application.
type Config struct {
	DBName string
	Port   string
	Slack  SlackConfig
	Turso  TursoConfig
}

// SlackConfig is optional; without a token no Slack announcements are sent.
type SlackConfig struct {
	Token     string
	ChannelID string
}

// TursoConfig points the database at a remote libsql primary. Empty means a
// plain local SQLite file.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
