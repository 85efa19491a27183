package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tallybooks/tally-backend/internal/domain"
)

const entryColumns = `id, business_id, transaction_id, entry_date, description, created_at`
const lineColumns = `id, entry_id, account_id, line_no, debit, credit, description`

type JournalRepository struct {
	db *sql.DB
}

func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

func (r *JournalRepository) CreateEntry(ctx context.Context, tx *sql.Tx, entry *domain.JournalEntry) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO journal_entries (id, business_id, transaction_id, entry_date, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.BusinessID, entry.TransactionID, entry.Date, entry.Description, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("CreateEntry: %w", err)
	}
	return nil
}

func (r *JournalRepository) CreateLines(ctx context.Context, tx *sql.Tx, lines []domain.JournalLine) error {
	for _, l := range lines {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO journal_lines (id, entry_id, account_id, line_no, debit, credit, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, l.EntryID, l.AccountID, l.LineNo, l.Debit, l.Credit, l.Description,
		)
		if err != nil {
			return fmt.Errorf("CreateLines: line %d: %w", l.LineNo, err)
		}
	}
	return nil
}

func (r *JournalRepository) GetEntryByID(ctx context.Context, id uuid.UUID) (*domain.JournalEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM journal_entries WHERE id = $1`, id,
	)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetEntryByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetEntryByID: %w", err)
	}

	lines, err := r.linesForEntry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetEntryByID: %w", err)
	}
	e.Lines = lines
	return e, nil
}

func (r *JournalRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID, limit int) ([]domain.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM journal_entries
		WHERE business_id = $1 ORDER BY entry_date DESC, created_at DESC LIMIT $2`,
		businessID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByBusiness: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByBusiness: scan: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByBusiness: rows: %w", err)
	}

	for i := range entries {
		lines, err := r.linesForEntry(ctx, entries[i].ID)
		if err != nil {
			return nil, fmt.Errorf("ListByBusiness: %w", err)
		}
		entries[i].Lines = lines
	}
	return entries, nil
}

// SumByAccount aggregates all posted debits and credits against one account.
func (r *JournalRepository) SumByAccount(ctx context.Context, accountID uuid.UUID) (debit, credit decimal.Decimal, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM journal_lines WHERE account_id = $1`, accountID,
	).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("SumByAccount: %w", err)
	}
	return debit, credit, nil
}

// AccountTotals is one row of a trial balance.
type AccountTotals struct {
	AccountID   uuid.UUID
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// SumByBusiness aggregates debits and credits per account across the business.
func (r *JournalRepository) SumByBusiness(ctx context.Context, businessID uuid.UUID) ([]AccountTotals, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT l.account_id, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.id = l.entry_id
		WHERE e.business_id = $1
		GROUP BY l.account_id`,
		businessID,
	)
	if err != nil {
		return nil, fmt.Errorf("SumByBusiness: %w", err)
	}
	defer rows.Close()

	var totals []AccountTotals
	for rows.Next() {
		var t AccountTotals
		if err := rows.Scan(&t.AccountID, &t.TotalDebit, &t.TotalCredit); err != nil {
			return nil, fmt.Errorf("SumByBusiness: scan: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SumByBusiness: rows: %w", err)
	}
	return totals, nil
}

func (r *JournalRepository) linesForEntry(ctx context.Context, entryID uuid.UUID) ([]domain.JournalLine, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+lineColumns+` FROM journal_lines WHERE entry_id = $1 ORDER BY line_no`,
		entryID,
	)
	if err != nil {
		return nil, fmt.Errorf("linesForEntry: %w", err)
	}
	defer rows.Close()

	var lines []domain.JournalLine
	for rows.Next() {
		var l domain.JournalLine
		err := rows.Scan(&l.ID, &l.EntryID, &l.AccountID, &l.LineNo, &l.Debit, &l.Credit, &l.Description)
		if err != nil {
			return nil, fmt.Errorf("linesForEntry: scan: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("linesForEntry: rows: %w", err)
	}
	return lines, nil
}

func scanEntry(s scanner) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := s.Scan(&e.ID, &e.BusinessID, &e.TransactionID, &e.Date, &e.Description, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
