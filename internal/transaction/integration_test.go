package transaction_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallybooks/tally-backend/internal/domain"
	"github.com/tallybooks/tally-backend/internal/ledger"
	"github.com/tallybooks/tally-backend/internal/repository"
	"github.com/tallybooks/tally-backend/internal/testutil"
	"github.com/tallybooks/tally-backend/internal/transaction"
)

func TestTransactionService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	accountRepo := repository.NewAccountRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	ledgerSvc := ledger.NewService(accountRepo, journalRepo, db)
	svc := transaction.NewService(transactionRepo, ledgerSvc, db)

	newBusiness := func(t *testing.T) *domain.Business {
		t.Helper()
		b := testutil.SeedTestBusiness(t, db, "Txn Test Co", "NG", nil)
		require.NoError(t, ledgerSvc.SetupChartOfAccounts(ctx, b.ID))
		return b
	}

	t.Run("income creates the transaction and its posting together", func(t *testing.T) {
		b := newBusiness(t)

		created, err := svc.Create(ctx, transaction.CreateRequest{
			BusinessID:  b.ID,
			Type:        domain.TransactionTypeIncome,
			Amount:      decimal.NewFromInt(500),
			Currency:    domain.CurrencyNGN,
			Date:        time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			Category:    "Sales",
			Description: "Invoice 42",
		})
		require.NoError(t, err)

		got, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TransactionTypeIncome, got.Type)
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(500)))

		assert.Equal(t, 1, testutil.CountJournalEntries(t, db, b.ID))
		assert.Equal(t, 2, testutil.CountJournalLines(t, db, b.ID))

		cashID := testutil.GetAccountIDByCode(t, db, b.ID, ledger.CodeCash)
		debit, credit := testutil.SumLines(t, db, cashID)
		assert.True(t, debit.Equal(decimal.NewFromInt(500)), "cash debit %s", debit)
		assert.True(t, credit.IsZero())

		entries, err := ledgerSvc.ListJournalEntries(ctx, b.ID, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.NotNil(t, entries[0].TransactionID)
		assert.Equal(t, created.ID, *entries[0].TransactionID)
		assert.Equal(t, "Invoice 42", entries[0].Description)
	})

	t.Run("expense posts against expenses and cash", func(t *testing.T) {
		b := newBusiness(t)

		_, err := svc.Create(ctx, transaction.CreateRequest{
			BusinessID: b.ID,
			Type:       domain.TransactionTypeExpense,
			Amount:     decimal.NewFromInt(120),
			Currency:   domain.CurrencyNGN,
			Date:       time.Now().UTC(),
			Category:   "Supplies",
		})
		require.NoError(t, err)

		expenses, err := ledgerSvc.GetBalance(ctx, b.ID, ledger.CodeGeneralExpenses)
		require.NoError(t, err)
		assert.True(t, expenses.Equal(decimal.NewFromInt(120)))

		cash, err := ledgerSvc.GetBalance(ctx, b.ID, ledger.CodeCash)
		require.NoError(t, err)
		assert.True(t, cash.Equal(decimal.NewFromInt(-120)), "cash balance %s", cash)

		entries, err := ledgerSvc.ListJournalEntries(ctx, b.ID, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Auto-generated for EXPENSE", entries[0].Description)
	})

	t.Run("invalid request writes nothing", func(t *testing.T) {
		b := newBusiness(t)

		_, err := svc.Create(ctx, transaction.CreateRequest{
			BusinessID: b.ID,
			Type:       domain.TransactionTypeIncome,
			Amount:     decimal.NewFromInt(-10),
			Currency:   domain.CurrencyNGN,
			Date:       time.Now().UTC(),
		})
		require.ErrorIs(t, err, domain.ErrInvalidAmount)

		assert.Equal(t, 0, testutil.CountJournalEntries(t, db, b.ID))

		var count int
		require.NoError(t, db.QueryRow(
			`SELECT COUNT(*) FROM transactions WHERE business_id = $1`, b.ID,
		).Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("posting failure rolls back the transaction row", func(t *testing.T) {
		// No chart seeded, so the posting cannot resolve its accounts.
		b := testutil.SeedTestBusiness(t, db, "Unprovisioned Co", "NG", nil)

		_, err := svc.Create(ctx, transaction.CreateRequest{
			BusinessID: b.ID,
			Type:       domain.TransactionTypeIncome,
			Amount:     decimal.NewFromInt(50),
			Currency:   domain.CurrencyNGN,
			Date:       time.Now().UTC(),
		})
		require.ErrorIs(t, err, domain.ErrUnknownAccount)

		var count int
		require.NoError(t, db.QueryRow(
			`SELECT COUNT(*) FROM transactions WHERE business_id = $1`, b.ID,
		).Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("list returns newest first", func(t *testing.T) {
		b := newBusiness(t)

		for i, day := range []int{1, 2, 3} {
			_, err := svc.Create(ctx, transaction.CreateRequest{
				BusinessID:  b.ID,
				Type:        domain.TransactionTypeIncome,
				Amount:      decimal.NewFromInt(int64(100 * (i + 1))),
				Currency:    domain.CurrencyNGN,
				Date:        time.Date(2026, 4, day, 0, 0, 0, 0, time.UTC),
				Description: "batch",
			})
			require.NoError(t, err)
		}

		list, err := svc.List(ctx, b.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.True(t, list[0].Date.After(list[2].Date))
	})

	t.Run("get unknown transaction reports not found", func(t *testing.T) {
		_, err := svc.GetByID(ctx, uuid.New())
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
