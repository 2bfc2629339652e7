// Package archive exports the event journal to object storage on a cron
// schedule. Each run writes batches of unarchived events as JSON-lines
// objects and then stamps them archived.
package archive

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/dmitrijs2005/lockstake/internal/dbx"
	"github.com/dmitrijs2005/lockstake/internal/logging"
	"github.com/dmitrijs2005/lockstake/internal/server/models"
	"github.com/dmitrijs2005/lockstake/internal/server/repositories/repomanager"
)

const contentType = "application/x-ndjson"

type ObjectStore interface {
	PutObject(ctx context.Context, key string, body []byte) error
}

// Counter receives the number of events exported per batch.
type Counter interface {
	AddArchived(n int)
}

type Archiver struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       ObjectStore
	batchSize   int
	logger      logging.Logger
	counter     Counter

	now   func() time.Time
	newID func() uuid.UUID
}

func NewArchiver(db *sql.DB, m repomanager.RepositoryManager, store ObjectStore, batchSize int, l logging.Logger, c Counter) *Archiver {
	return &Archiver{
		db:          db,
		repomanager: m,
		store:       store,
		batchSize:   batchSize,
		logger:      l.With("module", "archive"),
		counter:     c,
		now:         time.Now,
		newID:       uuid.New,
	}
}

type line struct {
	Seq        int64           `json:"seq"`
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Actor      string          `json:"actor"`
	LedgerTime uint32          `json:"ledger_time"`
	Payload    json.RawMessage `json:"payload"`
}

// ObjectKey is events/YYYY/MM/DD/<id>.jsonl in UTC.
func ObjectKey(at time.Time, id uuid.UUID) string {
	at = at.UTC()
	return fmt.Sprintf("events/%04d/%02d/%02d/%s.jsonl", at.Year(), at.Month(), at.Day(), id)
}

func encode(events []models.Event) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, e := range events {
		if err := enc.Encode(line{
			Seq:        e.Seq,
			ID:         e.ID,
			Name:       e.Name,
			Actor:      e.Actor,
			LedgerTime: e.LedgerTime,
			Payload:    json.RawMessage(e.Payload),
		}); err != nil {
			return nil, fmt.Errorf("encode event %d: %w", e.Seq, err)
		}
	}
	return buf.Bytes(), nil
}

// ArchiveOnce exports at most one batch and returns how many events it
// covered. The object is written before the events are marked, so a failed
// commit leads to a second export of the same events, never to a gap.
func (a *Archiver) ArchiveOnce(ctx context.Context) (int, error) {
	var n int
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		journal := a.repomanager.Events(tx)

		events, err := journal.ListUnarchived(ctx, a.batchSize)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		body, err := encode(events)
		if err != nil {
			return err
		}
		now := a.now()
		key := ObjectKey(now, a.newID())
		if err := a.store.PutObject(ctx, key, body); err != nil {
			return err
		}

		first, last := events[0].Seq, events[len(events)-1].Seq
		if _, err := journal.MarkArchived(ctx, first, last, now); err != nil {
			return err
		}
		n = len(events)
		a.logger.Info(ctx, "events archived", "key", key, "from_seq", first, "to_seq", last, "count", n)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if a.counter != nil && n > 0 {
		a.counter.AddArchived(n)
	}
	return n, nil
}

// Drain archives batches until the journal is exported or an error occurs.
func (a *Archiver) Drain(ctx context.Context) (int, error) {
	total := 0
	for {
		n, err := a.ArchiveOnce(ctx)
		total += n
		if err != nil || n < a.batchSize {
			return total, err
		}
	}
}

// Run drains the journal on every tick of schedule until ctx is done.
func (a *Archiver) Run(ctx context.Context, schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if _, err := a.Drain(ctx); err != nil {
			a.logger.Error(ctx, "archive failed", "error", err.Error())
		}
	})
	if err != nil {
		return fmt.Errorf("archive schedule: %w", err)
	}

	a.logger.Info(ctx, "Starting archive job", "schedule", schedule)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	a.logger.Info(ctx, "Archive job stopped")
	return nil
}
