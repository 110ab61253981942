package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConnection(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the database file and directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "mindmate.db")

		conn, err := NewConnection(ctx, database.Config{SQLitePath: path})
		require.NoError(t, err)
		defer conn.Close()

		assert.Equal(t, database.DriverSQLite, conn.Driver())
		assert.NoError(t, conn.Ping(ctx))
	})

	t.Run("executes queries", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mindmate.db")
		conn, err := NewConnection(ctx, database.Config{SQLitePath: path})
		require.NoError(t, err)
		defer conn.Close()

		_, err = conn.Exec(ctx, "CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)")
		require.NoError(t, err)

		result, err := conn.Exec(ctx, "INSERT INTO notes (body) VALUES (?)", "hello")
		require.NoError(t, err)
		affected, err := result.RowsAffected()
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)

		var body string
		err = conn.QueryRow(ctx, "SELECT body FROM notes WHERE id = 1").Scan(&body)
		require.NoError(t, err)
		assert.Equal(t, "hello", body)
	})

	t.Run("transactions roll back", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mindmate.db")
		conn, err := NewConnection(ctx, database.Config{SQLitePath: path})
		require.NoError(t, err)
		defer conn.Close()

		_, err = conn.Exec(ctx, "CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)")
		require.NoError(t, err)

		tx, err := conn.BeginTx(ctx)
		require.NoError(t, err)
		_, err = tx.Exec(ctx, "INSERT INTO notes (body) VALUES (?)", "doomed")
		require.NoError(t, err)
		require.NoError(t, tx.Rollback(ctx))

		var count int
		err = conn.QueryRow(ctx, "SELECT COUNT(*) FROM notes").Scan(&count)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("enforces foreign keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mindmate.db")
		conn, err := NewConnection(ctx, database.Config{SQLitePath: path})
		require.NoError(t, err)
		defer conn.Close()

		_, err = conn.Exec(ctx, "CREATE TABLE parents (id INTEGER PRIMARY KEY)")
		require.NoError(t, err)
		_, err = conn.Exec(ctx, "CREATE TABLE children (id INTEGER PRIMARY KEY, parent_id INTEGER REFERENCES parents(id))")
		require.NoError(t, err)

		_, err = conn.Exec(ctx, "INSERT INTO children (parent_id) VALUES (42)")
		assert.Error(t, err)
	})
}
