package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tallybooks/tally-backend/internal/domain"
	"github.com/tallybooks/tally-backend/internal/logging"
	"github.com/tallybooks/tally-backend/internal/tax"
)

type taxCalculator interface {
	Calculate(ctx context.Context, countryCode string, tc tax.Context) ([]tax.Result, error)
}

type TaxHandler struct {
	registry taxCalculator
}

func NewTaxHandler(registry taxCalculator) *TaxHandler {
	return &TaxHandler{registry: registry}
}

type taxEstimateRequest struct {
	CountryCode    string            `json:"country_code"`
	Amount         decimal.Decimal   `json:"amount"`
	Currency       string            `json:"currency"`
	Date           time.Time         `json:"date"`
	Category       string            `json:"category"`
	BusinessConfig map[string]string `json:"business_config"`
}

func (r taxEstimateRequest) Validate() []FieldError {
	var errs []FieldError
	if len(r.CountryCode) != 2 {
		errs = append(errs, FieldError{Field: "country_code", Message: "must be a 2-letter ISO code"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be greater than zero"})
	}
	return errs
}

type taxResultDTO struct {
	TaxName      string            `json:"tax_name"`
	Amount       decimal.Decimal   `json:"amount"`
	Rate         decimal.Decimal   `json:"rate"`
	IsDeductible bool              `json:"is_deductible"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

func (h *TaxHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req taxEstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	results, err := h.registry.Calculate(r.Context(), req.CountryCode, tax.Context{
		Amount:         req.Amount,
		Currency:       domain.Currency(req.Currency),
		Date:           req.Date,
		Category:       req.Category,
		BusinessConfig: req.BusinessConfig,
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to estimate tax", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]taxResultDTO, len(results))
	for i, res := range results {
		dtos[i] = taxResultDTO{
			TaxName:      res.TaxName,
			Amount:       res.Amount,
			Rate:         res.Rate,
			IsDeductible: res.IsDeductible,
			Metadata:     res.Metadata,
		}
	}

	RespondSuccess(w, http.StatusOK, dtos)
}
