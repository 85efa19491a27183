package tax

import (
	"context"

	"github.com/shopspring/decimal"
)

// Current standard VAT rate, in force since 2020.
var ngVATRate = decimal.NewFromFloat(0.075)

// NigeriaStrategy estimates Nigerian taxes. Only VAT is computed per
// transaction; company income tax depends on annual turnover brackets
// (30% large, 20% medium, 0% under the small-company threshold) and cannot
// be estimated at transaction granularity.
type NigeriaStrategy struct{}

func NewNigeriaStrategy() *NigeriaStrategy {
	return &NigeriaStrategy{}
}

func (s *NigeriaStrategy) CountryCode() string { return "NG" }

func (s *NigeriaStrategy) Calculate(_ context.Context, tc Context) ([]Result, error) {
	// Standard rate on everything; exempt categories (medical, books, basic
	// food) are not modelled yet.
	return []Result{
		{
			TaxName:      "VAT",
			Amount:       tc.Amount.Mul(ngVATRate),
			Rate:         ngVATRate,
			IsDeductible: true,
		},
	}, nil
}
