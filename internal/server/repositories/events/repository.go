// Package events persists the append-only journal of ledger events.
package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lockstake/internal/server/models"
)

type Repository interface {
	// Append stores e and sets its Seq.
	Append(ctx context.Context, e *models.Event) error
	// ListUnarchived returns up to limit events not yet exported, oldest first.
	ListUnarchived(ctx context.Context, limit int) ([]models.Event, error)
	// MarkArchived stamps every unarchived event with fromSeq <= seq <= toSeq.
	MarkArchived(ctx context.Context, fromSeq, toSeq int64, at time.Time) (int64, error)
}
