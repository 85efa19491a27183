// Package tax estimates jurisdiction-specific taxes for a transaction.
// Strategies are keyed by ISO country code; adding a jurisdiction means
// implementing Strategy and registering it at startup.
package tax

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tallybooks/tally-backend/internal/domain"
	"github.com/tallybooks/tally-backend/internal/logging"
)

// Context carries everything a strategy may consult. Amounts are gross
// transaction amounts; estimates are per-transaction, not period-aggregated.
type Context struct {
	Amount         decimal.Decimal
	Currency       domain.Currency
	Date           time.Time
	Category       string
	BusinessConfig domain.TaxConfig
}

// Result is one estimated tax line item. Never persisted here; storage, if
// any, belongs to the caller.
type Result struct {
	TaxName      string
	Amount       decimal.Decimal
	Rate         decimal.Decimal
	IsDeductible bool
	Metadata     map[string]string
}

type Strategy interface {
	CountryCode() string
	Calculate(ctx context.Context, tc Context) ([]Result, error)
}

// Registry dispatches tax estimation to the strategy registered for a
// country code. Build it once at startup and inject it; it holds no other
// state.
type Registry struct {
	strategies map[string]Strategy
}

func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{strategies: make(map[string]Strategy, len(strategies))}
	for _, s := range strategies {
		r.Register(s)
	}
	return r
}

// Register adds or overwrites the strategy for its country code.
func (r *Registry) Register(s Strategy) {
	r.strategies[s.CountryCode()] = s
}

// Calculate runs the strategy for the country code. An unknown jurisdiction
// is a soft miss: it logs a warning and returns an empty estimate so callers
// never block on tax computation.
func (r *Registry) Calculate(ctx context.Context, countryCode string, tc Context) ([]Result, error) {
	strategy, ok := r.strategies[countryCode]
	if !ok {
		logging.FromContext(ctx).Warn("no tax strategy registered", "country_code", countryCode)
		return []Result{}, nil
	}

	results, err := strategy.Calculate(ctx, tc)
	if err != nil {
		return nil, fmt.Errorf("Calculate: %s: %w", countryCode, err)
	}
	return results, nil
}
