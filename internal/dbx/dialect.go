package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lockstake/internal/filex"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect names a supported SQL backend. Queries are written with
// PostgreSQL-style $N placeholders and rebound per dialect.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

var ErrUnsupportedDSN = errors.New("unsupported database dsn")

// Driver is the database/sql driver name.
func (d Dialect) Driver() string {
	if d == SQLite {
		return "sqlite"
	}
	return "pgx"
}

// Goose is the migration dialect name understood by goose.
func (d Dialect) Goose() string {
	if d == SQLite {
		return "sqlite3"
	}
	return "pgx"
}

// Rebind rewrites $N placeholders into ?N for SQLite.
func (d Dialect) Rebind(query string) string {
	if d != SQLite {
		return query
	}
	return strings.ReplaceAll(query, "$", "?")
}

// ForUpdate is the row-locking suffix for singleton reads. SQLite locks the
// whole database for a write transaction, so it needs none.
func (d Dialect) ForUpdate() string {
	if d == Postgres {
		return " FOR UPDATE"
	}
	return ""
}

// ParseDSN detects the dialect from the DSN scheme and returns the
// driver-specific data source name.
//
//	postgres://... or postgresql://...  -> Postgres, unchanged
//	sqlite://path/to/file.db            -> SQLite, "path/to/file.db"
//	sqlite::memory:                     -> SQLite, ":memory:"
func ParseDSN(dsn string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return Postgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return SQLite, strings.TrimPrefix(dsn, "sqlite://"), nil
	case strings.HasPrefix(dsn, "sqlite:"):
		return SQLite, strings.TrimPrefix(dsn, "sqlite:"), nil
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
}

// Open connects to the database named by dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, Dialect, error) {
	dialect, source, err := ParseDSN(dsn)
	if err != nil {
		return nil, "", err
	}

	if dialect == SQLite {
		if path, _, _ := strings.Cut(source, "?"); path != ":memory:" && !strings.HasPrefix(path, "file:") {
			if err := filex.EnsureParentDir(path); err != nil {
				return nil, "", err
			}
		}
	}

	db, err := sql.Open(dialect.Driver(), source)
	if err != nil {
		return nil, "", fmt.Errorf("db open: %w", err)
	}
	if dialect == SQLite {
		// one writer at a time; also keeps :memory: on a single connection
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("db ping: %w", err)
	}
	return db, dialect, nil
}
