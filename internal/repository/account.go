package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/tallybooks/tally-backend/internal/domain"
)

const accountColumns = `id, business_id, code, name, type, created_at`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateBatch inserts the given accounts inside the caller's transaction.
// Re-seeding is a no-op: (business_id, code) conflicts are skipped.
func (r *AccountRepository) CreateBatch(ctx context.Context, tx *sql.Tx, accounts []domain.Account) error {
	for _, a := range accounts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (id, business_id, code, name, type, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (business_id, code) DO NOTHING`,
			a.ID, a.BusinessID, a.Code, a.Name, a.Type, a.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("CreateBatch: code %s: %w", a.Code, err)
		}
	}
	return nil
}

func (r *AccountRepository) GetByCode(ctx context.Context, businessID uuid.UUID, code string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE business_id = $1 AND code = $2`,
		businessID, code,
	)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByCode: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByCode: %w", err)
	}
	return a, nil
}

// GetByCodes resolves a set of account codes for a business in one round trip.
// Codes with no matching account are simply absent from the result.
func (r *AccountRepository) GetByCodes(ctx context.Context, businessID uuid.UUID, codes []string) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts
		WHERE business_id = $1 AND code = ANY($2)`,
		businessID, pq.Array(codes),
	)
	if err != nil {
		return nil, fmt.Errorf("GetByCodes: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("GetByCodes: scan: %w", err)
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetByCodes: rows: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE business_id = $1 ORDER BY code`,
		businessID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByBusiness: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByBusiness: scan: %w", err)
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByBusiness: rows: %w", err)
	}
	return accounts, nil
}

func scanAccount(s scanner) (*domain.Account, error) {
	var a domain.Account
	err := s.Scan(&a.ID, &a.BusinessID, &a.Code, &a.Name, &a.Type, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
