package app

import (
	"fmt"

	sharedApplication "github.com/weddingplan/planner/internal/shared/application"
	"github.com/weddingplan/planner/internal/shared/infrastructure/database"
	"github.com/weddingplan/planner/internal/shared/infrastructure/outbox"
	"github.com/weddingplan/planner/internal/timeline/domain"
	"github.com/weddingplan/planner/internal/timeline/infrastructure/persistence"
)

// RepositoryFactory creates repositories for a connection. The SQL is
// shared by both drivers, so the factory only checks the driver is known.
type RepositoryFactory struct {
	conn   database.Connection
	driver database.Driver
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) (*RepositoryFactory, error) {
	driver := conn.Driver()
	if !driver.IsValid() {
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
	return &RepositoryFactory{conn: conn, driver: driver}, nil
}

// TimelineRepository creates a timeline repository.
func (f *RepositoryFactory) TimelineRepository() domain.Repository {
	return persistence.NewSQLTimelineRepository(f.conn)
}

// OutboxRepository creates an outbox repository.
func (f *RepositoryFactory) OutboxRepository() outbox.Repository {
	return outbox.NewSQLRepository(f.conn)
}

// UnitOfWork creates a unit of work whose transactions the repositories join.
func (f *RepositoryFactory) UnitOfWork() sharedApplication.UnitOfWork {
	return database.NewUnitOfWork(f.conn)
}

// Driver returns the database driver type.
func (f *RepositoryFactory) Driver() database.Driver {
	return f.driver
}
