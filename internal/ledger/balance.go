package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tallybooks/tally-backend/internal/domain"
)

// GetBalance derives an account's balance from all lines posted against it.
// An unknown code reports zero rather than an error: an account nobody has
// posted to has no activity.
func (s *Service) GetBalance(ctx context.Context, businessID uuid.UUID, accountCode string) (decimal.Decimal, error) {
	account, err := s.accounts.GetByCode(ctx, businessID, accountCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("GetBalance: %w", err)
	}

	debit, credit, err := s.journal.SumByAccount(ctx, account.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("GetBalance: %w", err)
	}

	return normalBalance(account.Type, debit, credit), nil
}

// normalBalance applies standard accounting polarity: debit-normal accounts
// grow with debits, credit-normal accounts grow with credits.
func normalBalance(t domain.AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	if t.DebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// TrialBalanceRow pairs an account with its posted totals and signed balance.
type TrialBalanceRow struct {
	Account     domain.Account
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balance     decimal.Decimal
}

// TrialBalance is the full-scan reconciliation view: per-account debit and
// credit totals across the whole business. Accounts with no postings appear
// with zero totals.
func (s *Service) TrialBalance(ctx context.Context, businessID uuid.UUID) ([]TrialBalanceRow, error) {
	accounts, err := s.accounts.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("TrialBalance: %w", err)
	}

	totals, err := s.journal.SumByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("TrialBalance: %w", err)
	}

	byAccount := make(map[uuid.UUID]struct{ debit, credit decimal.Decimal }, len(totals))
	for _, t := range totals {
		byAccount[t.AccountID] = struct{ debit, credit decimal.Decimal }{t.TotalDebit, t.TotalCredit}
	}

	rows := make([]TrialBalanceRow, len(accounts))
	for i, a := range accounts {
		sums := byAccount[a.ID]
		rows[i] = TrialBalanceRow{
			Account:     a,
			TotalDebit:  sums.debit,
			TotalCredit: sums.credit,
			Balance:     normalBalance(a.Type, sums.debit, sums.credit),
		}
	}
	return rows, nil
}

// ListJournalEntries returns recent entries with their lines, newest first.
func (s *Service) ListJournalEntries(ctx context.Context, businessID uuid.UUID, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	entries, err := s.journal.ListByBusiness(ctx, businessID, limit)
	if err != nil {
		return nil, fmt.Errorf("ListJournalEntries: %w", err)
	}
	return entries, nil
}
