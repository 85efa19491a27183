package ledger

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tallybooks/tally-backend/internal/domain"
	"github.com/tallybooks/tally-backend/internal/repository"
)

type accountRepo interface {
	CreateBatch(ctx context.Context, tx *sql.Tx, accounts []domain.Account) error
	GetByCode(ctx context.Context, businessID uuid.UUID, code string) (*domain.Account, error)
	GetByCodes(ctx context.Context, businessID uuid.UUID, codes []string) ([]domain.Account, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.Account, error)
}

type journalRepo interface {
	CreateEntry(ctx context.Context, tx *sql.Tx, entry *domain.JournalEntry) error
	CreateLines(ctx context.Context, tx *sql.Tx, lines []domain.JournalLine) error
	ListByBusiness(ctx context.Context, businessID uuid.UUID, limit int) ([]domain.JournalEntry, error)
	SumByAccount(ctx context.Context, accountID uuid.UUID) (debit, credit decimal.Decimal, err error)
	SumByBusiness(ctx context.Context, businessID uuid.UUID) ([]repository.AccountTotals, error)
}

// Service is the double-entry posting engine. It owns the Account and
// JournalEntry lifecycle; nothing else writes them.
type Service struct {
	accounts accountRepo
	journal  journalRepo
	db       *sql.DB
}

func NewService(accounts accountRepo, journal journalRepo, db *sql.DB) *Service {
	return &Service{accounts: accounts, journal: journal, db: db}
}
