package db

type Config struct {
	// Dialect selects the database driver. Only sqlite is deployed.
	Dialect string `conf:"dialect" yaml:"dialect" json:"dialect"`
	DSN     string `conf:"dsn"     yaml:"dsn"     json:"dsn"`
	Debug   bool   `conf:"debug"   yaml:"debug"   json:"debug"`
}
