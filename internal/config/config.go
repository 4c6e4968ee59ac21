package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Stockroom"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"stockroom"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		SigningKey string        `envconfig:"AUTH_SIGNING_KEY" default:"dev-only-signing-key"`
		SessionTTL time.Duration `envconfig:"AUTH_SESSION_TTL" default:"12h"`
		// Users is the fixed credential table as comma-separated user:password pairs.
		Users string `envconfig:"AUTH_USERS" default:"admin:admin123,manager:manager123"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Credentials parses the AUTH_USERS pairs into a username -> password map.
func (c *Config) Credentials() (map[string]string, error) {
	creds := make(map[string]string)

	for _, pair := range strings.Split(c.Auth.Users, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		user, pass, ok := strings.Cut(pair, ":")
		if !ok || user == "" {
			return nil, fmt.Errorf("malformed credential pair %q", pair)
		}

		creds[user] = pass
	}

	if len(creds) == 0 {
		return nil, fmt.Errorf("no credentials configured")
	}

	return creds, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
