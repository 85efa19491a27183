package transaction

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallybooks/tally-backend/internal/domain"
	"github.com/tallybooks/tally-backend/internal/ledger"
)

func TestJournalLinesFor(t *testing.T) {
	amount := decimal.NewFromInt(500000)

	t.Run("income debits cash and credits revenue", func(t *testing.T) {
		lines := journalLinesFor(domain.TransactionTypeIncome, amount)
		require.Len(t, lines, 2)

		assert.Equal(t, ledger.CodeCash, lines[0].AccountCode)
		assert.True(t, lines[0].Debit.Equal(amount))
		assert.True(t, lines[0].Credit.IsZero())

		assert.Equal(t, ledger.CodeSalesRevenue, lines[1].AccountCode)
		assert.True(t, lines[1].Debit.IsZero())
		assert.True(t, lines[1].Credit.Equal(amount))
	})

	t.Run("expense debits expenses and credits cash", func(t *testing.T) {
		lines := journalLinesFor(domain.TransactionTypeExpense, amount)
		require.Len(t, lines, 2)

		assert.Equal(t, ledger.CodeGeneralExpenses, lines[0].AccountCode)
		assert.True(t, lines[0].Debit.Equal(amount))
		assert.True(t, lines[0].Credit.IsZero())

		assert.Equal(t, ledger.CodeCash, lines[1].AccountCode)
		assert.True(t, lines[1].Debit.IsZero())
		assert.True(t, lines[1].Credit.Equal(amount))
	})

	t.Run("lines always balance", func(t *testing.T) {
		for _, typ := range []domain.TransactionType{domain.TransactionTypeIncome, domain.TransactionTypeExpense} {
			lines := journalLinesFor(typ, decimal.RequireFromString("123.45"))
			totalDebit := decimal.Zero
			totalCredit := decimal.Zero
			for _, l := range lines {
				totalDebit = totalDebit.Add(l.Debit)
				totalCredit = totalCredit.Add(l.Credit)
			}
			assert.True(t, totalDebit.Equal(totalCredit), "%s: %s != %s", typ, totalDebit, totalCredit)
		}
	})
}

func TestValidateCreate(t *testing.T) {
	valid := CreateRequest{
		Type:     domain.TransactionTypeIncome,
		Amount:   decimal.NewFromInt(100),
		Currency: domain.CurrencyNGN,
	}

	tests := []struct {
		name    string
		mutate  func(*CreateRequest)
		wantErr error
	}{
		{"valid", func(r *CreateRequest) {}, nil},
		{"zero amount", func(r *CreateRequest) { r.Amount = decimal.Zero }, domain.ErrInvalidAmount},
		{"negative amount", func(r *CreateRequest) { r.Amount = decimal.NewFromInt(-5) }, domain.ErrInvalidAmount},
		{"bad type", func(r *CreateRequest) { r.Type = "TRANSFER" }, domain.ErrInvalidType},
		{"bad currency", func(r *CreateRequest) { r.Currency = "XYZ" }, domain.ErrInvalidCurrency},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			err := validateCreate(req)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
