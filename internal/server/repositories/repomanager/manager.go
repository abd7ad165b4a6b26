package repomanager

import (
	"context"
	"database/sql"

	"github.com/mkragh/cereald/internal/dbx"
	"github.com/mkragh/cereald/internal/server/repositories/cereals"
	"github.com/mkragh/cereald/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a database
// handle and exposes the schema migration hook.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Cereals(db dbx.DBTX) cereals.Repository
}
