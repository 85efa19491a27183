package transaction

import (
	"github.com/shopspring/decimal"
	"github.com/tallybooks/tally-backend/internal/domain"
	"github.com/tallybooks/tally-backend/internal/ledger"
)

// journalLinesFor converts a transaction into its two balancing ledger lines.
// The mapping is fixed per type; picking accounts by category is a known
// simplification deferred to a later iteration.
//
//	INCOME:  Dr Cash on Hand (1000), Cr Sales Revenue (4000)
//	EXPENSE: Dr General Expenses (5000), Cr Cash on Hand (1000)
func journalLinesFor(t domain.TransactionType, amount decimal.Decimal) []ledger.LineInput {
	if t == domain.TransactionTypeIncome {
		return []ledger.LineInput{
			{AccountCode: ledger.CodeCash, Debit: amount, Credit: decimal.Zero},
			{AccountCode: ledger.CodeSalesRevenue, Debit: decimal.Zero, Credit: amount},
		}
	}
	return []ledger.LineInput{
		{AccountCode: ledger.CodeGeneralExpenses, Debit: amount, Credit: decimal.Zero},
		{AccountCode: ledger.CodeCash, Debit: decimal.Zero, Credit: amount},
	}
}
