package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weddingplan/planner/internal/shared/infrastructure/database"
)

// unknownDriverConnection reports a driver no repository supports.
type unknownDriverConnection struct {
	database.Connection
}

func (unknownDriverConnection) Driver() database.Driver { return "mysql" }

func TestNewRepositoryFactory(t *testing.T) {
	conn, err := database.Open(context.Background(), database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "planner.db"),
	})
	require.NoError(t, err)
	defer conn.Close()

	factory, err := NewRepositoryFactory(conn)
	require.NoError(t, err)

	assert.Equal(t, database.DriverSQLite, factory.Driver())
	assert.NotNil(t, factory.TimelineRepository())
	assert.NotNil(t, factory.OutboxRepository())
	assert.NotNil(t, factory.UnitOfWork())
}

func TestNewRepositoryFactory_UnsupportedDriver(t *testing.T) {
	_, err := NewRepositoryFactory(unknownDriverConnection{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}
