package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tallybooks/tally-backend/internal/domain"
	"github.com/tallybooks/tally-backend/internal/logging"
)

// Account codes the transaction mapper posts against.
const (
	CodeCash               = "1000"
	CodeAccountsReceivable = "1200"
	CodeAccountsPayable    = "2000"
	CodeSalesTaxPayable    = "2100"
	CodeOwnerEquity        = "3000"
	CodeSalesRevenue       = "4000"
	CodeGeneralExpenses    = "5000"
)

type chartAccount struct {
	code string
	name string
	typ  domain.AccountType
}

// Every business gets the same starting chart.
var defaultChart = []chartAccount{
	{CodeCash, "Cash on Hand", domain.AccountTypeAsset},
	{CodeAccountsReceivable, "Accounts Receivable", domain.AccountTypeAsset},
	{CodeAccountsPayable, "Accounts Payable", domain.AccountTypeLiability},
	{CodeSalesTaxPayable, "Sales Tax Payable", domain.AccountTypeLiability},
	{CodeOwnerEquity, "Owner Equity", domain.AccountTypeEquity},
	{CodeSalesRevenue, "Sales Revenue", domain.AccountTypeRevenue},
	{CodeGeneralExpenses, "General Expenses", domain.AccountTypeExpense},
}

// SetupChartOfAccounts seeds the default chart for a new business as one
// atomic batch. Calling it again for the same business is a no-op.
func (s *Service) SetupChartOfAccounts(ctx context.Context, businessID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("SetupChartOfAccounts: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.SeedChart(ctx, tx, businessID); err != nil {
		return fmt.Errorf("SetupChartOfAccounts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("SetupChartOfAccounts: commit: %w", err)
	}

	logging.FromContext(ctx).Info("chart of accounts seeded", "business_id", businessID)
	return nil
}

// SeedChart writes the default accounts inside a caller-owned transaction so
// business provisioning can bundle it with the business record itself.
func (s *Service) SeedChart(ctx context.Context, tx *sql.Tx, businessID uuid.UUID) error {
	now := time.Now().UTC()
	accounts := make([]domain.Account, len(defaultChart))
	for i, c := range defaultChart {
		accounts[i] = domain.Account{
			ID:         uuid.New(),
			BusinessID: businessID,
			Code:       c.code,
			Name:       c.name,
			Type:       c.typ,
			CreatedAt:  now,
		}
	}

	if err := s.accounts.CreateBatch(ctx, tx, accounts); err != nil {
		return fmt.Errorf("SeedChart: %w", err)
	}
	return nil
}

// ListAccounts returns the business's chart of accounts ordered by code.
func (s *Service) ListAccounts(ctx context.Context, businessID uuid.UUID) ([]domain.Account, error) {
	accounts, err := s.accounts.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("ListAccounts: %w", err)
	}
	return accounts, nil
}
