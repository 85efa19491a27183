package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnbalancedEntry = errors.New("journal entry debits do not equal credits")
	ErrUnknownAccount  = errors.New("account code not found")
	ErrEmptyEntry      = errors.New("journal entry has no lines")
	ErrMixedLine       = errors.New("journal line carries both debit and credit")
	ErrNegativeAmount  = errors.New("journal line amount is negative")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidRequest  = errors.New("invalid request")
)
