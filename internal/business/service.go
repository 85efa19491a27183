// Package business provisions businesses. A new business always gets its
// default chart of accounts in the same commit, so transactions can post
// immediately.
package business

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tallybooks/tally-backend/internal/domain"
	"github.com/tallybooks/tally-backend/internal/logging"
)

type businessRepo interface {
	Create(ctx context.Context, tx *sql.Tx, b *domain.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
}

type chartSeeder interface {
	SeedChart(ctx context.Context, tx *sql.Tx, businessID uuid.UUID) error
}

type Service struct {
	businesses businessRepo
	ledger     chartSeeder
	db         *sql.DB
}

func NewService(businesses businessRepo, ledger chartSeeder, db *sql.DB) *Service {
	return &Service{businesses: businesses, ledger: ledger, db: db}
}

func (s *Service) Create(ctx context.Context, name, countryCode string, taxConfig domain.TaxConfig) (*domain.Business, error) {
	if taxConfig == nil {
		taxConfig = domain.TaxConfig{}
	}

	b := &domain.Business{
		ID:          uuid.New(),
		Name:        name,
		CountryCode: countryCode,
		TaxConfig:   taxConfig,
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Create: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.businesses.Create(ctx, tx, b); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	if err := s.ledger.SeedChart(ctx, tx, b.ID); err != nil {
		return nil, fmt.Errorf("Create: seed chart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Create: commit: %w", err)
	}

	logging.FromContext(ctx).Info("business created",
		"business_id", b.ID,
		"name", b.Name,
		"country_code", b.CountryCode,
	)

	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	b, err := s.businesses.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return b, nil
}
