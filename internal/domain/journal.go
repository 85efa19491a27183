package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalEntry is an atomic, dated, balanced group of journal lines recording
// one business event. Entries are immutable once posted; amendments require a
// reversing entry.
type JournalEntry struct {
	ID            uuid.UUID
	BusinessID    uuid.UUID
	TransactionID *uuid.UUID
	Date          time.Time
	Description   string
	Lines         []JournalLine
	CreatedAt     time.Time
}

// JournalLine is one side of a posting. Exactly one of Debit/Credit is
// non-zero; both are always non-negative.
type JournalLine struct {
	ID          uuid.UUID
	EntryID     uuid.UUID
	AccountID   uuid.UUID
	LineNo      int
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}
