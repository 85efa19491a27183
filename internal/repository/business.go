package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tallybooks/tally-backend/internal/domain"
)

const businessColumns = `id, name, country_code, tax_config, created_at`

type BusinessRepository struct {
	db *sql.DB
}

func NewBusinessRepository(db *sql.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

func (r *BusinessRepository) Create(ctx context.Context, tx *sql.Tx, b *domain.Business) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO businesses (id, name, country_code, tax_config, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.Name, b.CountryCode, b.TaxConfig, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *BusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+businessColumns+` FROM businesses WHERE id = $1`, id,
	)
	var b domain.Business
	err := row.Scan(&b.ID, &b.Name, &b.CountryCode, &b.TaxConfig, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return &b, nil
}
