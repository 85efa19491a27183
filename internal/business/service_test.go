package business_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallybooks/tally-backend/internal/business"
	"github.com/tallybooks/tally-backend/internal/domain"
	"github.com/tallybooks/tally-backend/internal/ledger"
	"github.com/tallybooks/tally-backend/internal/repository"
	"github.com/tallybooks/tally-backend/internal/testutil"
)

func TestBusinessService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	accountRepo := repository.NewAccountRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	businessRepo := repository.NewBusinessRepository(db)

	ledgerSvc := ledger.NewService(accountRepo, journalRepo, db)
	svc := business.NewService(businessRepo, ledgerSvc, db)

	t.Run("create provisions the business with its chart", func(t *testing.T) {
		b, err := svc.Create(ctx, "Ada's Bakery", "NG", domain.TaxConfig{"vat_registered": "true"})
		require.NoError(t, err)

		assert.Equal(t, 7, testutil.CountAccounts(t, db, b.ID))

		got, err := svc.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada's Bakery", got.Name)
		assert.Equal(t, "NG", got.CountryCode)
		assert.Equal(t, "true", got.TaxConfig["vat_registered"])
	})

	t.Run("nil tax config round-trips as empty", func(t *testing.T) {
		b, err := svc.Create(ctx, "Plain Co", "US", nil)
		require.NoError(t, err)

		got, err := svc.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.TaxConfig)
		assert.Empty(t, got.TaxConfig)
	})

	t.Run("get unknown business reports not found", func(t *testing.T) {
		_, err := svc.GetByID(ctx, uuid.New())
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
