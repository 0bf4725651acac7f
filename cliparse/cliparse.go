package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminAccount string
	AccountSalt  string
	PublicReads  bool
	LogLevel     slog.Level
	EnvFile      string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var logLevel string
	var publicReads string

	fs := flag.NewFlagSet("quickly-ballot", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or memory)")
	fs.StringVar(&cfg.EnvFile, "env-file", "", "Load environment from this file (default .env if present)")

	// Ballot
	fs.StringVar(&cfg.AdminAccount, "admin", "", "Administrator account")
	fs.StringVar(&publicReads, "public-reads", "", "Let anyone read voters and proposals (true/false)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AccountSalt, "account-salt", "", "Account signature salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	switch cfg.DatabaseType {
	case "sqlite", "postgres", "memory":
	default:
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType != "memory" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.AdminAccount == "" {
		cfg.AdminAccount = os.Getenv("ADMIN_ACCOUNT")
	}
	if cfg.AdminAccount == "" {
		return Config{}, errors.New("ADMIN_ACCOUNT required")
	}

	if publicReads == "" {
		publicReads = os.Getenv("PUBLIC_READS")
	}
	if publicReads != "" {
		v, err := strconv.ParseBool(publicReads)
		if err != nil {
			return Config{}, errors.New("invalid PUBLIC_READS value")
		}
		cfg.PublicReads = v
	}

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return Config{}, fmt.Errorf("invalid log level %q", logLevel)
		}
	}

	// Secrets - MUST be provided
	if cfg.AccountSalt == "" {
		cfg.AccountSalt = os.Getenv("ACCOUNT_SALT")
	}
	if cfg.AccountSalt == "" {
		return Config{}, errors.New("ACCOUNT_SALT required")
	}

	return cfg, nil
}

// loadEnvFile reads path into the environment without overriding variables
// that are already set. With no path, a missing .env is not an error.
func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}
