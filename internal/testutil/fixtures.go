package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tallybooks/tally-backend/internal/domain"
)

func SeedTestBusiness(t *testing.T, db *sql.DB, name, countryCode string, taxConfig domain.TaxConfig) *domain.Business {
	t.Helper()

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

	_, err := db.Exec(
		`INSERT INTO businesses (id, name, country_code, tax_config, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.Name, b.CountryCode, b.TaxConfig, b.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed test business %s: %v", name, err)
	}
	return b
}

func GetAccountIDByCode(t *testing.T, db *sql.DB, businessID uuid.UUID, code string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(
		`SELECT id FROM accounts WHERE business_id = $1 AND code = $2`,
		businessID, code,
	).Scan(&id)
	if err != nil {
		t.Fatalf("get account id for code %s: %v", code, err)
	}
	return id
}

func CountAccounts(t *testing.T, db *sql.DB, businessID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM accounts WHERE business_id = $1`, businessID).Scan(&count)
	if err != nil {
		t.Fatalf("count accounts for business %s: %v", businessID, err)
	}
	return count
}

func CountJournalEntries(t *testing.T, db *sql.DB, businessID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM journal_entries WHERE business_id = $1`, businessID).Scan(&count)
	if err != nil {
		t.Fatalf("count journal entries for business %s: %v", businessID, err)
	}
	return count
}

func CountJournalLines(t *testing.T, db *sql.DB, businessID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM journal_lines l
		 JOIN journal_entries e ON e.id = l.entry_id
		 WHERE e.business_id = $1`, businessID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("count journal lines for business %s: %v", businessID, err)
	}
	return count
}

func SumLines(t *testing.T, db *sql.DB, accountID uuid.UUID) (debit, credit decimal.Decimal) {
	t.Helper()

	err := db.QueryRow(
		`SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		 FROM journal_lines WHERE account_id = $1`, accountID,
	).Scan(&debit, &credit)
	if err != nil {
		t.Fatalf("sum lines for account %s: %v", accountID, err)
	}
	return debit, credit
}
