// Package config loads the explicit runtime configuration that is handed to
// the connection step. Values come from an optional .env file and the process
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvDBName      = "DB_NAME"
	EnvAutoMigrate = "DB_AUTO_MIGRATE"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
	EnvLogSQL      = "LOG_SQL"
)

// envKeys maps recognised environment variables to koanf key paths.
// Anything else in the environment is ignored.
var envKeys = map[string]string{
	EnvDatabaseURL: "database.url",
	EnvDBName:      "database.name",
	EnvAutoMigrate: "database.auto_migrate",
	EnvLogLevel:    "log.level",
	EnvLogFormat:   "log.format",
	EnvLogSQL:      "log.sql",
}

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
}

// DatabaseConfig describes which database to talk to.
type DatabaseConfig struct {
	// URL is the backend connection string (sqlite:, postgres://, mysql://).
	URL string `koanf:"url" validate:"required"`
	// Name is the database to create/drop and, for server backends, to
	// reconnect to after the root connection is established.
	Name        string `koanf:"name"`
	AutoMigrate bool   `koanf:"auto_migrate"`
}

// LogConfig controls the zerolog logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=console json"`
	SQL    bool   `koanf:"sql"`
}

// Overrides holds values set on the command line. Empty fields are ignored.
type Overrides struct {
	DatabaseURL string
	DBName      string
	LogLevel    string
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			AutoMigrate: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the given .env files (".env" when none are named), then the
// process environment, and validates the result. Missing .env files are not
// an error. Variables already present in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if err := loadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	k := koanf.New(".")
	err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	return cfg, nil
}

// Apply copies the non-empty overrides onto the config.
func (c *Config) Apply(o Overrides) {
	if o.DatabaseURL != "" {
		c.Database.URL = o.DatabaseURL
	}
	if o.DBName != "" {
		c.Database.Name = o.DBName
	}
	if o.LogLevel != "" {
		c.Log.Level = strings.ToLower(o.LogLevel)
	}
}

// Validate checks required fields and enumerations.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("invalid config: %s", describe(verrs))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RequireName fails when no database name is configured.
func (c *Config) RequireName() error {
	if strings.TrimSpace(c.Database.Name) == "" {
		return fmt.Errorf("%s must be set", EnvDBName)
	}
	return nil
}

func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", f, err)
		}
	}
	return nil
}

// describe renders validation failures using the environment variable names
// an operator would actually set.
func describe(verrs validator.ValidationErrors) string {
	fieldEnv := map[string]string{
		"Config.Database.URL": EnvDatabaseURL,
		"Config.Log.Level":    EnvLogLevel,
		"Config.Log.Format":   EnvLogFormat,
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Namespace()
		if envName, ok := fieldEnv[name]; ok {
			name = envName
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s must be set", name))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", name, fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", name, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
