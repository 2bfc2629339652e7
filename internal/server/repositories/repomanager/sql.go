package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/lockstake/internal/dbx"
	"github.com/dmitrijs2005/lockstake/internal/server/migrations"
	"github.com/dmitrijs2005/lockstake/internal/server/repositories/balances"
	"github.com/dmitrijs2005/lockstake/internal/server/repositories/events"
	"github.com/dmitrijs2005/lockstake/internal/server/repositories/positions"
	"github.com/dmitrijs2005/lockstake/internal/server/repositories/settings"
	"github.com/dmitrijs2005/lockstake/internal/server/repositories/stats"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends repositories speaking one SQL dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func NewSQLRepositoryManager(dialect dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect { return m.dialect }

func (m *SQLRepositoryManager) Settings(db dbx.DBTX) settings.Repository {
	return settings.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Stats(db dbx.DBTX) stats.Repository {
	return stats.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Positions(db dbx.DBTX) positions.Repository {
	return positions.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Balances(db dbx.DBTX) balances.Repository {
	return balances.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Events(db dbx.DBTX) events.Repository {
	return events.NewSQLRepository(db, m.dialect)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations of the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.Goose()); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return gooseUpContext(ctx, db, string(m.dialect))
}
