package knowledge

import (
	"errors"
	"strings"

	"github.com/goliatone/go-knowledge/pkg/interfaces"
)

var (
	ErrLoggingLevelInvalid  = errors.New("knowledge: logging level invalid")
	ErrLoggingFormatInvalid = errors.New("knowledge: logging format invalid")
	ErrStorageDSNRequired   = errors.New("knowledge: storage enabled but no DSN configured")
)

// Config captures the runtime configuration for the knowledge module.
type Config struct {
	Logging  LoggingConfig
	Storage  StorageConfig
	Markdown MarkdownConfig
}

// LoggingConfig controls the default go-logger provider. Hosts that inject
// their own provider through WithLoggerProvider can leave Enabled false.
type LoggingConfig struct {
	Enabled   bool
	Level     string
	Format    string
	AddSource bool
}

// StorageConfig controls the bun-backed entry store. When Enabled is false
// the module only offers the pure composition APIs.
type StorageConfig struct {
	Enabled     bool
	DSN         string
	AutoMigrate bool
}

// MarkdownConfig carries the default preview parser options.
type MarkdownConfig struct {
	Parser interfaces.ParseOptions
}

// DefaultConfig returns a configuration suitable for embedding: JSON logging
// at info level, storage disabled until a DSN is supplied.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Format:  "json",
		},
		Storage: StorageConfig{
			AutoMigrate: true,
		},
	}
}

// Validate checks the configuration before the module is constructed.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}

	if c.Storage.Enabled && strings.TrimSpace(c.Storage.DSN) == "" {
		return ErrStorageDSNRequired
	}
	return nil
}
