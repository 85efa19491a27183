package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type Currency string

const (
	CurrencyNGN Currency = "NGN"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

func (c Currency) IsValid() bool {
	switch c {
	case CurrencyNGN, CurrencyUSD, CurrencyEUR, CurrencyGBP:
		return true
	}
	return false
}

// Transaction is the user-facing view of a money event. Each transaction maps
// to exactly one journal entry.
type Transaction struct {
	ID          uuid.UUID
	BusinessID  uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	Currency    Currency
	Date        time.Time
	Category    string
	Description string
	CreatedAt   time.Time
}
