package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Remote backend names.
const (
	BackendWebApp = "webapp"
	BackendSheets = "sheets"
	BackendMemory = "memory"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// Remote backend selection
	RemoteBackend string

	// Web-app endpoint (webapp backend)
	RemoteURL string

	// Google Sheets (sheets backend)
	GoogleSpreadsheetID   string
	GoogleSheetName       string
	GoogleCredentialsJSON string
	GoogleCredentialsFile string

	// AMQP (optional; empty URL disables the push queue)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Periodic full resync
	SyncInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8081"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/snackledger.db"),

		RemoteBackend: getEnv("REMOTE_BACKEND", BackendMemory),
		RemoteURL:     getEnv("REMOTE_URL", ""),

		GoogleSpreadsheetID:   getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:       getEnv("GOOGLE_SHEET_NAME", ""),
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "snackledger"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "sync_records"),

		SyncInterval: getEnvDuration("SYNC_INTERVAL", 5*time.Minute),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	switch c.RemoteBackend {
	case BackendWebApp:
		if c.RemoteURL == "" {
			errors = append(errors, "REMOTE_URL is required when using the webapp backend")
		} else if parsed, err := url.Parse(c.RemoteURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid remote URL '%s': %v", c.RemoteURL, err))
		} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid remote URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
		}
	case BackendSheets:
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using the sheets backend")
		}
		if c.GoogleCredentialsJSON == "" && c.GoogleCredentialsFile == "" {
			if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
				errors = append(errors, "either GOOGLE_CREDENTIALS_JSON, GOOGLE_CREDENTIALS_FILE or GOOGLE_APPLICATION_CREDENTIALS must be provided for the sheets backend")
			}
		}
		if c.GoogleCredentialsFile != "" {
			if _, err := os.Stat(c.GoogleCredentialsFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google credentials file does not exist: %s", c.GoogleCredentialsFile))
			}
		}
	case BackendMemory:
		// nothing to validate
	default:
		errors = append(errors, fmt.Sprintf("invalid remote backend '%s': must be one of [%s %s %s]",
			c.RemoteBackend, BackendWebApp, BackendSheets, BackendMemory))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.SyncInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid sync interval %v: must be at least 1 second", c.SyncInterval))
	} else if c.SyncInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid sync interval %v: must be at most 24 hours", c.SyncInterval))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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
