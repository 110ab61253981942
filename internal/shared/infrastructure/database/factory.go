package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/security"
)

// Config holds connection settings for either backend.
type Config struct {
	// Driver selects the backend; empty or "auto" detects it from URL.
	Driver Driver

	// URL is the PostgreSQL connection string.
	URL string

	// SQLitePath is the SQLite database file. Defaults to
	// ~/.mindmate/mindmate.db.
	SQLitePath string

	// MaxConns caps the pool size (PostgreSQL only).
	MaxConns int
}

// NewConnection opens a connection for the configured backend.
func NewConnection(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.Driver
	if driver == "" || driver == "auto" {
		driver = DetectDriver(cfg.URL)
	}

	switch driver {
	case DriverPostgres:
		if openPostgres == nil {
			return nil, fmt.Errorf("postgres driver not registered")
		}
		return openPostgres(ctx, cfg)
	case DriverSQLite:
		if openSQLite == nil {
			return nil, fmt.Errorf("sqlite driver not registered")
		}
		if cfg.SQLitePath != "" {
			// The path can come straight from the environment.
			clean, err := security.ValidateFilePath(cfg.SQLitePath)
			if err != nil {
				return nil, fmt.Errorf("invalid sqlite path: %w", err)
			}
			cfg.SQLitePath = clean
		}
		return openSQLite(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// DefaultSQLitePath returns the per-user local database location.
func DefaultSQLitePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".mindmate", "mindmate.db")
}

// DefaultLocalConfig is the zero-configuration local SQLite setup.
func DefaultLocalConfig() Config {
	return Config{
		Driver:     DriverSQLite,
		SQLitePath: DefaultSQLitePath(),
	}
}

// EnsureDirectory creates the parent directory of a file path.
func EnsureDirectory(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// The concrete backends register themselves from their own packages; the
// indirection avoids an import cycle with the driver subpackages.
var (
	openPostgres func(ctx context.Context, cfg Config) (Connection, error)
	openSQLite   func(ctx context.Context, cfg Config) (Connection, error)
)

// RegisterPostgresDriver installs the PostgreSQL connection factory.
func RegisterPostgresDriver(fn func(ctx context.Context, cfg Config) (Connection, error)) {
	openPostgres = fn
}

// RegisterSQLiteDriver installs the SQLite connection factory.
func RegisterSQLiteDriver(fn func(ctx context.Context, cfg Config) (Connection, error)) {
	openSQLite = fn
}
