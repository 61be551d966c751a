package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultEnvFile       = ".env"
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "console"
	DefaultRejectedTopic = "transaction_rejected"
	DefaultLockedTopic   = "account_locked"
)

// Config is the process configuration read from the environment.
type Config struct {
	LogLevel  string
	LogFormat string

	// DatabaseURL enables the Postgres report export when set.
	DatabaseURL string

	// KafkaBrokers enables event publishing when non-empty.
	KafkaBrokers       []string
	KafkaRejectedTopic string
	KafkaLockedTopic   string
}

// Load reads envFile into the environment, then builds a Config from it.
// Variables already set in the environment win over the file. A missing
// default .env file is ignored; a missing file the caller named is an error.
func Load(envFile string) (Config, error) {
	explicit := envFile != ""
	if !explicit {
		envFile = DefaultEnvFile
	}

	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		LogLevel:           strings.ToLower(getenv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:          strings.ToLower(getenv("LOG_FORMAT", DefaultLogFormat)),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		KafkaBrokers:       splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaRejectedTopic: getenv("KAFKA_REJECTED_TOPIC", DefaultRejectedTopic),
		KafkaLockedTopic:   getenv("KAFKA_LOCKED_TOPIC", DefaultLockedTopic),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid LOG_LEVEL %q", c.LogLevel)
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("config: invalid LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
