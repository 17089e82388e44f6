package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/skillswap/internal/dbx"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/ratings"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/swaprequests"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a connection or a
// transaction so that services can compose them inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	SwapRequests(db dbx.DBTX) swaprequests.Repository
	Ratings(db dbx.DBTX) ratings.Repository
}
