package tax

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

const categoryTransfer = "Transfer"

var (
	usStateRates = map[string]decimal.Decimal{
		"NY": decimal.NewFromFloat(0.08875),
		"CA": decimal.NewFromFloat(0.0725),
	}
	// National-average placeholder for states without an explicit rate.
	usDefaultSalesRate = decimal.NewFromFloat(0.06)

	// Combined Social Security + Medicare rate. Properly computed on net
	// income; applied to the gross amount here as a set-aside estimate.
	usSelfEmploymentRate = decimal.NewFromFloat(0.153)
)

// USStrategy estimates US taxes from the business's configured state. Sales
// tax is really county-level; a per-state flat rate is the accepted
// approximation for estimates.
type USStrategy struct{}

func NewUSStrategy() *USStrategy {
	return &USStrategy{}
}

func (s *USStrategy) CountryCode() string { return "US" }

func (s *USStrategy) Calculate(_ context.Context, tc Context) ([]Result, error) {
	var results []Result

	state := tc.BusinessConfig["state"]
	if state == "" {
		state = "DE"
	}

	rate, ok := usStateRates[state]
	if !ok {
		rate = usDefaultSalesRate
	}

	// Transfers between own accounts are not sales; no sales tax applies.
	if tc.Category != categoryTransfer {
		results = append(results, Result{
			TaxName:      fmt.Sprintf("Sales Tax (%s)", state),
			Amount:       tc.Amount.Mul(rate),
			Rate:         rate,
			IsDeductible: false,
		})
	}

	results = append(results, Result{
		TaxName:      "Set-Aside: Self-Employment Tax",
		Amount:       tc.Amount.Mul(usSelfEmploymentRate),
		Rate:         usSelfEmploymentRate,
		IsDeductible: false,
	})

	return results, nil
}
