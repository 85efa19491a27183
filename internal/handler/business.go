package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tallybooks/tally-backend/internal/domain"
	"github.com/tallybooks/tally-backend/internal/logging"
)

type businessService interface {
	Create(ctx context.Context, name, countryCode string, taxConfig domain.TaxConfig) (*domain.Business, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
}

type BusinessHandler struct {
	businesses businessService
}

func NewBusinessHandler(businesses businessService) *BusinessHandler {
	return &BusinessHandler{businesses: businesses}
}

type createBusinessRequest struct {
	Name        string            `json:"name"`
	CountryCode string            `json:"country_code"`
	TaxConfig   map[string]string `json:"tax_config"`
}

func (r createBusinessRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	if len(r.CountryCode) != 2 {
		errs = append(errs, FieldError{Field: "country_code", Message: "must be a 2-letter ISO code"})
	}
	return errs
}

type businessDTO struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	CountryCode string            `json:"country_code"`
	TaxConfig   map[string]string `json:"tax_config"`
	CreatedAt   time.Time         `json:"created_at"`
}

func toBusinessDTO(b *domain.Business) businessDTO {
	return businessDTO{
		ID:          b.ID,
		Name:        b.Name,
		CountryCode: b.CountryCode,
		TaxConfig:   b.TaxConfig,
		CreatedAt:   b.CreatedAt,
	}
}

func (h *BusinessHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	business, err := h.businesses.Create(r.Context(), req.Name, req.CountryCode, req.TaxConfig)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create business", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toBusinessDTO(business))
}

func (h *BusinessHandler) Get(w http.ResponseWriter, r *http.Request) {
	businessID, appErr := businessFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	business, err := h.businesses.GetByID(r.Context(), businessID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toBusinessDTO(business))
}

func businessFromPath(r *http.Request) (uuid.UUID, *AppError) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, ErrResourceNotFound
	}
	return id, nil
}
