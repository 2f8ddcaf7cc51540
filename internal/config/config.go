package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	// External providers
	CurrencyAPIKey string
	StockAPIKey    string

	// Row source
	DataBackend         string
	PathFile            string
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// User settings file (currencies and stocks for the dashboard)
	SettingsPath string

	// Report artifacts
	ReportFile   string
	SQLiteDBPath string

	// Report events (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	LogLevel string
}

// Load reads the configuration from environment variables. Callers load
// .env themselves (godotenv in main) before calling this.
func Load() *Config {
	return &Config{
		CurrencyAPIKey: getEnv("CURRENCY_API_KEY", ""),
		StockAPIKey:    getEnv("ALPHA_VANTAGE_API_KEY", ""),

		DataBackend:         getEnv("DATA_BACKEND", "csv"),
		PathFile:            getEnv("PATH_FILE", "data/operations.csv"),
		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Operations"),

		SettingsPath: getEnv("SETTINGS_PATH", "user_settings.json"),

		ReportFile:   getEnv("REPORT_FILE", "reports/report.json"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finreport"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "report_events"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the parts of the configuration that cannot fail lazily.
func (c *Config) Validate() error {
	switch c.DataBackend {
	case "csv":
		if c.PathFile == "" {
			return fmt.Errorf("PATH_FILE is required for the csv backend")
		}
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			return fmt.Errorf("GOOGLE_SPREADSHEET_ID is required for the sheets backend")
		}
	case "memory":
		// Nothing to validate; used by tests and demos.
	default:
		return fmt.Errorf("invalid data backend %q: must be one of csv, sheets, memory", c.DataBackend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// UserSettings lists the currencies and stock symbols shown on the
// dashboard. It is loaded once at startup and injected into the components
// that need it.
type UserSettings struct {
	UserCurrencies []string `json:"user_currencies"`
	UserStocks     []string `json:"user_stocks"`
}

func DefaultUserSettings() UserSettings {
	return UserSettings{
		UserCurrencies: []string{"USD", "EUR"},
		UserStocks:     []string{"AAPL", "AMZN", "GOOGL", "MSFT", "TSLA"},
	}
}

// LoadUserSettings reads the settings file. A missing or malformed file
// falls back to the defaults, per key: a file that only lists currencies
// still gets the default stocks.
func LoadUserSettings(path string) UserSettings {
	defaults := DefaultUserSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("user settings file not readable, using defaults", "path", path, "error", err)
		return defaults
	}

	var s UserSettings
	if err := json.Unmarshal(data, &s); err != nil {
		slog.Warn("user settings file malformed, using defaults", "path", path, "error", err)
		return defaults
	}
	if len(s.UserCurrencies) == 0 {
		s.UserCurrencies = defaults.UserCurrencies
	}
	if len(s.UserStocks) == 0 {
		s.UserStocks = defaults.UserStocks
	}
	return s
}
