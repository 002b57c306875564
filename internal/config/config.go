package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"`           // current application environment (local, dev, production etc)
	LogFile          string `mapstructure:"log_file"`      // optional log file, stderr when empty
	TelegramAPIToken string `mapstructure:"-"`             // Telegram API token loaded from environment
	WorkbookPath     string `mapstructure:"workbook_path"` // path to the .xlsx or .csv vocabulary workbook
	Quiz             Quiz   `mapstructure:"quiz"`          // quiz defaults and limits
	HTTP             HTTP   `mapstructure:"http"`          // HTTP API server
	Web              Web    `mapstructure:"web"`           // static front-end
	Ledger           Ledger `mapstructure:"ledger"`        // score ledger backend
	DB               DB     `mapstructure:"database"`      // database configuration section
}

// Quiz contains quiz defaults and limits.
type Quiz struct {
	DefaultCount    int           `mapstructure:"default_count"`    // questions per quiz when none requested
	MaxCount        int           `mapstructure:"max_count"`        // upper bound for the requested count
	SessionTTL      time.Duration `mapstructure:"session_ttl"`      // idle time after which a session is dropped
	CleanupSchedule string        `mapstructure:"cleanup_schedule"` // cron spec for dropping idle sessions
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Addr            string        `mapstructure:"addr"`
	AllowedOrigin   string        `mapstructure:"allowed_origin"` // value of Access-Control-Allow-Origin
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Web points at the static browser front-end.
type Web struct {
	Dir string `mapstructure:"dir"` // served at / when set
}

// Ledger selects where last scores are stored.
type Ledger struct {
	Driver     string `mapstructure:"driver"`      // sqlite, postgres or memory
	SQLitePath string `mapstructure:"sqlite_path"` // database file for the sqlite driver
}

// Ledger drivers.
const (
	LedgerSQLite   = "sqlite"
	LedgerPostgres = "postgres"
	LedgerMemory   = "memory"
)

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// TelegramToken returns the bot token if it is configured.
func (c *Config) TelegramToken() (string, error) {
	if c.TelegramAPIToken == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return c.TelegramAPIToken, nil
}

// Load reads configuration from ./config, a .env file and environment variables.
func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads configuration from a config.yaml in dir, a .env file in the
// working directory and environment variables.
func LoadFrom(dir string) (*Config, error) {
	// A missing .env file is fine, the variables may already be exported.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("log_file", "")
	v.SetDefault("workbook_path", "data/szavak.xlsx")
	v.SetDefault("quiz.default_count", 10)
	v.SetDefault("quiz.max_count", 200)
	v.SetDefault("quiz.session_ttl", "2h")
	v.SetDefault("quiz.cleanup_schedule", "@every 5m")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origin", "*")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "10s")
	v.SetDefault("http.shutdown_timeout", "5s")
	v.SetDefault("web.dir", "")
	v.SetDefault("ledger.driver", LedgerSQLite)
	v.SetDefault("ledger.sqlite_path", "data/scores.db")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Sensitive values come from the environment only and are checked by the
	// command that needs them.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Ledger.Driver {
	case LedgerSQLite, LedgerPostgres, LedgerMemory:
	default:
		return fmt.Errorf("unknown ledger driver %q", c.Ledger.Driver)
	}
	if c.Quiz.DefaultCount < 1 {
		return fmt.Errorf("quiz.default_count must be positive, got %d", c.Quiz.DefaultCount)
	}
	if c.Quiz.MaxCount < c.Quiz.DefaultCount {
		return fmt.Errorf("quiz.max_count %d is below quiz.default_count %d", c.Quiz.MaxCount, c.Quiz.DefaultCount)
	}
	return nil
}
