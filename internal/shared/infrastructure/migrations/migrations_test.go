package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weddingplan/planner/internal/shared/infrastructure/database"
	_ "github.com/weddingplan/planner/internal/shared/infrastructure/database/sqlite"
)

func TestRun_SQLite(t *testing.T) {
	ctx := context.Background()
	conn, err := database.Open(ctx, database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "planner.db"),
	})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, Run(ctx, conn))
	// A second run finds everything applied.
	require.NoError(t, Run(ctx, conn))

	var applied int
	require.NoError(t, conn.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)

	for _, table := range []string{"timelines", "timeline_phases", "outbox"} {
		var n int
		err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}
}

func TestUpFilesMatchAcrossDrivers(t *testing.T) {
	sqliteFiles, err := upFiles("sqlite")
	require.NoError(t, err)
	postgresFiles, err := upFiles("postgres")
	require.NoError(t, err)

	assert.Equal(t, sqliteFiles, postgresFiles)
}

func TestStatements(t *testing.T) {
	body := "CREATE TABLE a (x INT);\n\nCREATE INDEX i ON a (x);\n"
	assert.Equal(t, []string{"CREATE TABLE a (x INT)", "CREATE INDEX i ON a (x)"}, statements(body))
}
