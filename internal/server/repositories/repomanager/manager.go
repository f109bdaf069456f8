package repomanager

import (
	"context"
	"database/sql"

	"github.com/languagesphere/server/internal/dbx"
	"github.com/languagesphere/server/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a database handle and exposes
// a schema migration hook. Passing a dbx.DBTX lets the same repository run
// against the shared pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
