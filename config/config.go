package config

import (
	"errors"

	"github.com/namsral/flag"
)

type Config struct {
	DBConnUri        string
	DBMigrationsPath string
	ListenAddr       string
	SecretKey        string
	LogLevel         string
	MaxCardsPerDeck  int
}

// Load loads the configs from the given arguments
func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("deckvault", flag.ContinueOnError)

	fs.StringVar(&c.DBConnUri, "db-conn-uri", "", "the connection string for the postgres database")
	fs.StringVar(&c.DBMigrationsPath, "db-migrations-path", "", "the path where migrations are stored")
	fs.StringVar(&c.ListenAddr, "listen-addr", ":8190", "the host:port to listen on")
	fs.StringVar(&c.SecretKey, "secret-key", "", "the HMAC secret used to verify bearer tokens")
	fs.StringVar(&c.LogLevel, "log-level", "info", "log level")
	fs.IntVar(&c.MaxCardsPerDeck, "max-cards-per-deck", 10000, "maximum number of cards in a single deck")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.SecretKey == "" {
		return errors.New("secret-key is required")
	}
	return nil
}
