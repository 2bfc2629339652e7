// Package repomanager vends dialect-bound repository implementations and
// runs the embedded goose migrations for the active dialect.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lockstake/internal/dbx"
	"github.com/dmitrijs2005/lockstake/internal/server/repositories/balances"
	"github.com/dmitrijs2005/lockstake/internal/server/repositories/events"
	"github.com/dmitrijs2005/lockstake/internal/server/repositories/positions"
	"github.com/dmitrijs2005/lockstake/internal/server/repositories/settings"
	"github.com/dmitrijs2005/lockstake/internal/server/repositories/stats"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Settings(db dbx.DBTX) settings.Repository
	Stats(db dbx.DBTX) stats.Repository
	Positions(db dbx.DBTX) positions.Repository
	Balances(db dbx.DBTX) balances.Repository
	Events(db dbx.DBTX) events.Repository
}
