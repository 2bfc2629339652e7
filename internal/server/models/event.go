package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is one row of the append-only ledger journal.
type Event struct {
	Seq        int64     `json:"seq"`
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Actor      string    `json:"actor"`
	LedgerTime uint32    `json:"ledger_time"`
	// Payload is the JSON encoding of the typed event.
	Payload    []byte     `json:"-"`
	ArchivedAt *time.Time `json:"-"`
}
