package transaction

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tallybooks/tally-backend/internal/domain"
	"github.com/tallybooks/tally-backend/internal/ledger"
	"github.com/tallybooks/tally-backend/internal/logging"
)

type transactionRepo interface {
	Create(ctx context.Context, tx *sql.Tx, t *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.Transaction, error)
}

type ledgerPoster interface {
	PostEntry(ctx context.Context, tx *sql.Tx, input ledger.EntryInput) (*domain.JournalEntry, error)
}

type Service struct {
	transactions transactionRepo
	ledger       ledgerPoster
	db           *sql.DB
}

func NewService(transactions transactionRepo, ledgerSvc ledgerPoster, db *sql.DB) *Service {
	return &Service{transactions: transactions, ledger: ledgerSvc, db: db}
}

type CreateRequest struct {
	BusinessID  uuid.UUID
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Currency    domain.Currency
	Date        time.Time
	Category    string
	Description string
}

// Create saves the transaction and posts its journal entry in one database
// transaction: a transaction row is never visible without its posting.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Transaction, error) {
	if err := validateCreate(req); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	t := &domain.Transaction{
		ID:          uuid.New(),
		BusinessID:  req.BusinessID,
		Type:        req.Type,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Date:        req.Date,
		Category:    req.Category,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Create: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.transactions.Create(ctx, tx, t); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Auto-generated for %s", req.Type)
	}

	entry, err := s.ledger.PostEntry(ctx, tx, ledger.EntryInput{
		BusinessID:    req.BusinessID,
		TransactionID: &t.ID,
		Date:          req.Date,
		Description:   description,
		Lines:         journalLinesFor(req.Type, req.Amount),
	})
	if err != nil {
		return nil, fmt.Errorf("Create: post entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Create: commit: %w", err)
	}

	logging.FromContext(ctx).Info("transaction recorded",
		"transaction_id", t.ID,
		"business_id", t.BusinessID,
		"type", t.Type,
		"amount", t.Amount,
		"entry_id", entry.ID,
	)

	return t, nil
}

func (s *Service) List(ctx context.Context, businessID uuid.UUID) ([]domain.Transaction, error) {
	transactions, err := s.transactions.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return transactions, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	t, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return t, nil
}

func validateCreate(req CreateRequest) error {
	if !req.Amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !req.Type.IsValid() {
		return domain.ErrInvalidType
	}
	if !req.Currency.IsValid() {
		return domain.ErrInvalidCurrency
	}
	return nil
}
