package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallybooks/tally-backend/internal/domain"
	"github.com/tallybooks/tally-backend/internal/ledger"
	"github.com/tallybooks/tally-backend/internal/repository"
	"github.com/tallybooks/tally-backend/internal/testutil"
)

func TestLedgerService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	accountRepo := repository.NewAccountRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	svc := ledger.NewService(accountRepo, journalRepo, db)

	newBusiness := func(t *testing.T) *domain.Business {
		t.Helper()
		b := testutil.SeedTestBusiness(t, db, "Ledger Test Co", "NG", nil)
		require.NoError(t, svc.SetupChartOfAccounts(ctx, b.ID))
		return b
	}

	t.Run("chart seeding creates the default accounts", func(t *testing.T) {
		b := newBusiness(t)
		assert.Equal(t, 7, testutil.CountAccounts(t, db, b.ID))

		accounts, err := svc.ListAccounts(ctx, b.ID)
		require.NoError(t, err)
		require.Len(t, accounts, 7)
		assert.Equal(t, ledger.CodeCash, accounts[0].Code)
		assert.Equal(t, domain.AccountTypeAsset, accounts[0].Type)
		assert.Equal(t, ledger.CodeGeneralExpenses, accounts[6].Code)
	})

	t.Run("chart seeding is idempotent", func(t *testing.T) {
		b := newBusiness(t)
		require.NoError(t, svc.SetupChartOfAccounts(ctx, b.ID))
		assert.Equal(t, 7, testutil.CountAccounts(t, db, b.ID))
	})

	t.Run("record and read back a balanced entry", func(t *testing.T) {
		b := newBusiness(t)

		entry, err := svc.RecordJournalEntry(ctx, ledger.EntryInput{
			BusinessID:  b.ID,
			Date:        time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			Description: "Cash sale",
			Lines: []ledger.LineInput{
				{AccountCode: ledger.CodeCash, Debit: decimal.NewFromInt(250)},
				{AccountCode: ledger.CodeSalesRevenue, Credit: decimal.NewFromInt(250)},
			},
		})
		require.NoError(t, err)
		require.Len(t, entry.Lines, 2)

		entries, err := svc.ListJournalEntries(ctx, b.ID, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entry.ID, entries[0].ID)
		assert.Equal(t, "Cash sale", entries[0].Description)
		require.Len(t, entries[0].Lines, 2)
		assert.Equal(t, 1, entries[0].Lines[0].LineNo)
		assert.True(t, entries[0].Lines[0].Debit.Equal(decimal.NewFromInt(250)))
	})

	t.Run("unbalanced entry writes nothing", func(t *testing.T) {
		b := newBusiness(t)

		_, err := svc.RecordJournalEntry(ctx, ledger.EntryInput{
			BusinessID:  b.ID,
			Date:        time.Now().UTC(),
			Description: "Does not balance",
			Lines: []ledger.LineInput{
				{AccountCode: ledger.CodeCash, Debit: decimal.NewFromInt(100)},
				{AccountCode: ledger.CodeSalesRevenue, Credit: decimal.NewFromInt(90)},
			},
		})
		require.ErrorIs(t, err, domain.ErrUnbalancedEntry)

		assert.Equal(t, 0, testutil.CountJournalEntries(t, db, b.ID))
		assert.Equal(t, 0, testutil.CountJournalLines(t, db, b.ID))
	})

	t.Run("unknown account code writes nothing", func(t *testing.T) {
		b := newBusiness(t)

		_, err := svc.RecordJournalEntry(ctx, ledger.EntryInput{
			BusinessID:  b.ID,
			Date:        time.Now().UTC(),
			Description: "Bad code",
			Lines: []ledger.LineInput{
				{AccountCode: "9999", Debit: decimal.NewFromInt(100)},
				{AccountCode: ledger.CodeSalesRevenue, Credit: decimal.NewFromInt(100)},
			},
		})
		require.ErrorIs(t, err, domain.ErrUnknownAccount)

		assert.Equal(t, 0, testutil.CountJournalEntries(t, db, b.ID))
		assert.Equal(t, 0, testutil.CountJournalLines(t, db, b.ID))
	})

	t.Run("balances follow the normal balance convention", func(t *testing.T) {
		b := newBusiness(t)

		// Income of 100, then an expense of 40, both through cash.
		_, err := svc.RecordJournalEntry(ctx, ledger.EntryInput{
			BusinessID: b.ID,
			Date:       time.Now().UTC(),
			Lines: []ledger.LineInput{
				{AccountCode: ledger.CodeCash, Debit: decimal.NewFromInt(100)},
				{AccountCode: ledger.CodeSalesRevenue, Credit: decimal.NewFromInt(100)},
			},
		})
		require.NoError(t, err)

		_, err = svc.RecordJournalEntry(ctx, ledger.EntryInput{
			BusinessID: b.ID,
			Date:       time.Now().UTC(),
			Lines: []ledger.LineInput{
				{AccountCode: ledger.CodeGeneralExpenses, Debit: decimal.NewFromInt(40)},
				{AccountCode: ledger.CodeCash, Credit: decimal.NewFromInt(40)},
			},
		})
		require.NoError(t, err)

		cash, err := svc.GetBalance(ctx, b.ID, ledger.CodeCash)
		require.NoError(t, err)
		assert.True(t, cash.Equal(decimal.NewFromInt(60)), "cash balance %s", cash)

		revenue, err := svc.GetBalance(ctx, b.ID, ledger.CodeSalesRevenue)
		require.NoError(t, err)
		assert.True(t, revenue.Equal(decimal.NewFromInt(100)), "revenue balance %s", revenue)

		expenses, err := svc.GetBalance(ctx, b.ID, ledger.CodeGeneralExpenses)
		require.NoError(t, err)
		assert.True(t, expenses.Equal(decimal.NewFromInt(40)), "expense balance %s", expenses)
	})

	t.Run("unknown account balance is zero", func(t *testing.T) {
		b := newBusiness(t)

		balance, err := svc.GetBalance(ctx, b.ID, "8888")
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})

	t.Run("trial balance covers every account and reconciles", func(t *testing.T) {
		b := newBusiness(t)

		_, err := svc.RecordJournalEntry(ctx, ledger.EntryInput{
			BusinessID: b.ID,
			Date:       time.Now().UTC(),
			Lines: []ledger.LineInput{
				{AccountCode: ledger.CodeCash, Debit: decimal.NewFromInt(500)},
				{AccountCode: ledger.CodeSalesRevenue, Credit: decimal.NewFromInt(500)},
			},
		})
		require.NoError(t, err)

		rows, err := svc.TrialBalance(ctx, b.ID)
		require.NoError(t, err)
		require.Len(t, rows, 7)

		totalDebit := decimal.Zero
		totalCredit := decimal.Zero
		byCode := make(map[string]ledger.TrialBalanceRow, len(rows))
		for _, r := range rows {
			byCode[r.Account.Code] = r
			totalDebit = totalDebit.Add(r.TotalDebit)
			totalCredit = totalCredit.Add(r.TotalCredit)
		}

		assert.True(t, totalDebit.Equal(totalCredit), "debits %s credits %s", totalDebit, totalCredit)
		assert.True(t, byCode[ledger.CodeCash].Balance.Equal(decimal.NewFromInt(500)))
		assert.True(t, byCode[ledger.CodeSalesRevenue].Balance.Equal(decimal.NewFromInt(500)))
		assert.True(t, byCode[ledger.CodeOwnerEquity].TotalDebit.IsZero())
		assert.True(t, byCode[ledger.CodeOwnerEquity].Balance.IsZero())
	})
}
