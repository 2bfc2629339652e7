package events

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lockstake/internal/dbx"
	"github.com/dmitrijs2005/lockstake/internal/server/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Append(ctx context.Context, e *models.Event) error {
	query :=
		`INSERT INTO events (id, name, actor, ledger_time, payload)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING seq`

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query),
		e.ID, e.Name, e.Actor, int64(e.LedgerTime), string(e.Payload)).Scan(&e.Seq)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) ListUnarchived(ctx context.Context, limit int) ([]models.Event, error) {
	query :=
		`SELECT seq, id, name, actor, ledger_time, payload
		 FROM events
		 WHERE archived_at IS NULL
		 ORDER BY seq
		 LIMIT $1`

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Event
	for rows.Next() {
		var (
			e       models.Event
			at      int64
			payload string
		)
		if err := rows.Scan(&e.Seq, &e.ID, &e.Name, &e.Actor, &at, &payload); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if e.LedgerTime, err = dbx.Seconds(at); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.Payload = []byte(payload)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *SQLRepository) MarkArchived(ctx context.Context, fromSeq, toSeq int64, at time.Time) (int64, error) {
	query :=
		`UPDATE events SET archived_at = $1
		 WHERE seq BETWEEN $2 AND $3 AND archived_at IS NULL`

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), at.UTC(), fromSeq, toSeq)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
