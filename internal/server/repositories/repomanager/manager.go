package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmaia/clipstream/internal/dbx"
	"github.com/dmaia/clipstream/internal/server/repositories/shorts"
	"github.com/dmaia/clipstream/internal/server/repositories/users"
	"github.com/dmaia/clipstream/internal/server/repositories/videos"
)

// RepositoryManager hands out repositories bound to a DB handle. Passing a
// dbx.DBTX lets callers run several repositories inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Videos(db dbx.DBTX) videos.Repository
	Shorts(db dbx.DBTX) shorts.Repository
}
