package app

import (
	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	productivityPersistence "github.com/Hamid-ijaz/mindmate/internal/productivity/infrastructure/persistence"
	"github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/database"
	"github.com/Hamid-ijaz/mindmate/internal/syncqueue"
)

// newTaskRepository returns the task repository for the connection's driver.
func newTaskRepository(conn database.Connection) task.Repository {
	if conn.Driver() == database.DriverPostgres {
		return productivityPersistence.NewPostgresTaskRepository(conn)
	}
	return productivityPersistence.NewSQLiteTaskRepository(conn)
}

// newSyncQueueRepository returns the sync queue repository for the
// connection's driver.
func newSyncQueueRepository(conn database.Connection) syncqueue.Repository {
	if conn.Driver() == database.DriverPostgres {
		return syncqueue.NewPostgresRepository(conn)
	}
	return syncqueue.NewSQLiteRepository(conn)
}
