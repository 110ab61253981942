// Package migrations creates and evolves the database schema. Each dialect
// has its own directory of numbered .up.sql files; every statement is
// idempotent so re-running the full set is safe.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/database"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrationFS embed.FS

// Run executes all migrations for the connection's dialect, in order.
func Run(ctx context.Context, conn database.Connection) error {
	var dir string
	switch conn.Driver() {
	case database.DriverPostgres:
		dir = "postgres"
	case database.DriverSQLite:
		dir = "sqlite"
	default:
		return fmt.Errorf("no migrations for driver %q", conn.Driver())
	}

	entries, err := migrationFS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, file := range upFiles {
		migration, err := migrationFS.ReadFile(dir + "/" + file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		// Statements run one at a time; pgx does not accept multi-statement
		// strings over the extended protocol.
		for _, stmt := range strings.Split(string(migration), ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := conn.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("execute migration %s: %w", file, err)
			}
		}
	}

	return nil
}
