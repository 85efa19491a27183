package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tallybooks/tally-backend/internal/domain"
	"github.com/tallybooks/tally-backend/internal/logging"
)

// balanceTolerance absorbs rounding drift from upstream float arithmetic.
var balanceTolerance = decimal.NewFromFloat(0.01)

type LineInput struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

type EntryInput struct {
	BusinessID    uuid.UUID
	TransactionID *uuid.UUID
	Date          time.Time
	Description   string
	Lines         []LineInput
}

// RecordJournalEntry validates and commits a balanced journal entry in its
// own transaction. Nothing is written unless every check passes.
func (s *Service) RecordJournalEntry(ctx context.Context, input EntryInput) (*domain.JournalEntry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("RecordJournalEntry: begin tx: %w", err)
	}
	defer tx.Rollback()

	entry, err := s.PostEntry(ctx, tx, input)
	if err != nil {
		return nil, fmt.Errorf("RecordJournalEntry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("RecordJournalEntry: commit: %w", err)
	}

	logging.FromContext(ctx).Info("journal entry posted",
		"entry_id", entry.ID,
		"business_id", entry.BusinessID,
		"lines", len(entry.Lines),
	)

	return entry, nil
}

// PostEntry validates the entry and writes it inside a caller-owned
// transaction, so callers can make the posting atomic with their own writes.
func (s *Service) PostEntry(ctx context.Context, tx *sql.Tx, input EntryInput) (*domain.JournalEntry, error) {
	if err := validateLines(input.Lines); err != nil {
		return nil, fmt.Errorf("PostEntry: %w", err)
	}

	byCode, err := s.resolveAccounts(ctx, input.BusinessID, input.Lines)
	if err != nil {
		return nil, fmt.Errorf("PostEntry: %w", err)
	}

	entry := &domain.JournalEntry{
		ID:            uuid.New(),
		BusinessID:    input.BusinessID,
		TransactionID: input.TransactionID,
		Date:          input.Date,
		Description:   input.Description,
		CreatedAt:     time.Now().UTC(),
	}

	entry.Lines = make([]domain.JournalLine, len(input.Lines))
	for i, l := range input.Lines {
		desc := l.Description
		if desc == "" {
			desc = input.Description
		}
		entry.Lines[i] = domain.JournalLine{
			ID:          uuid.New(),
			EntryID:     entry.ID,
			AccountID:   byCode[l.AccountCode].ID,
			LineNo:      i + 1,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: desc,
		}
	}

	if err := s.journal.CreateEntry(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("PostEntry: %w", err)
	}
	if err := s.journal.CreateLines(ctx, tx, entry.Lines); err != nil {
		return nil, fmt.Errorf("PostEntry: %w", err)
	}

	return entry, nil
}

// validateLines enforces the entry invariants before anything touches
// storage: lines exist, amounts are non-negative, no line carries both a
// debit and a credit, and the entry balances within tolerance.
func validateLines(lines []LineInput) error {
	if len(lines) == 0 {
		return domain.ErrEmptyEntry
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("line %d: %w", i+1, domain.ErrNegativeAmount)
		}
		if !l.Debit.IsZero() && !l.Credit.IsZero() {
			return fmt.Errorf("line %d: %w", i+1, domain.ErrMixedLine)
		}
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}

	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceTolerance) {
		return fmt.Errorf("debit %s != credit %s: %w",
			totalDebit.StringFixed(2), totalCredit.StringFixed(2), domain.ErrUnbalancedEntry)
	}

	return nil
}

// resolveAccounts maps every distinct account code in the lines to its
// account, using a single bulk lookup scoped to the business.
func (s *Service) resolveAccounts(ctx context.Context, businessID uuid.UUID, lines []LineInput) (map[string]domain.Account, error) {
	seen := make(map[string]bool, len(lines))
	var codes []string
	for _, l := range lines {
		if !seen[l.AccountCode] {
			seen[l.AccountCode] = true
			codes = append(codes, l.AccountCode)
		}
	}

	accounts, err := s.accounts.GetByCodes(ctx, businessID, codes)
	if err != nil {
		return nil, fmt.Errorf("resolveAccounts: %w", err)
	}

	byCode := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byCode[a.Code] = a
	}

	for _, code := range codes {
		if _, ok := byCode[code]; !ok {
			return nil, fmt.Errorf("resolveAccounts: account code %s: %w", code, domain.ErrUnknownAccount)
		}
	}

	return byCode, nil
}
