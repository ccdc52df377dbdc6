package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	DataBackend  string // "memory" or "sqlite"
	SQLiteDBPath string

	// Completion service
	AnthropicAPIKey string
	Model           string

	// Insight pipeline
	RecordWindow time.Duration
	RecordLimit  int

	// Auth: "token:user" pairs, comma separated
	AuthTokens map[string]string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8082"),
		DataBackend:  getEnv("DATA_BACKEND", "memory"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/spendsight.db"),

		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		Model:           getEnv("MODEL", "claude-3-5-haiku-latest"),

		RecordWindow: getEnvDuration("RECORD_WINDOW", 30*24*time.Hour),
		RecordLimit:  getEnvInt("RECORD_LIMIT", 50),

		AuthTokens: parseTokenPairs(getEnv("AUTH_TOKENS", "")),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [memory sqlite]", c.DataBackend))
	}

	if c.DataBackend == "sqlite" && c.SQLiteDBPath == "" {
		errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
	}

	if c.Model == "" {
		errs = append(errs, "model cannot be empty")
	}

	if c.RecordLimit < 1 {
		errs = append(errs, fmt.Sprintf("invalid record limit %d: must be at least 1", c.RecordLimit))
	}
	if c.RecordWindow < time.Hour {
		errs = append(errs, fmt.Sprintf("invalid record window %v: must be at least 1 hour", c.RecordWindow))
	}

	if len(c.AuthTokens) == 0 {
		errs = append(errs, "at least one AUTH_TOKENS entry is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// parseTokenPairs parses "token:user,token2:user2" into a lookup table.
// Malformed pairs are skipped.
func parseTokenPairs(s string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, user, ok := strings.Cut(pair, ":")
		if !ok || token == "" || user == "" {
			continue
		}
		out[token] = user
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
