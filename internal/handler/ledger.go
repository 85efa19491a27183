package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tallybooks/tally-backend/internal/domain"
	"github.com/tallybooks/tally-backend/internal/ledger"
	"github.com/tallybooks/tally-backend/internal/logging"
)

type ledgerService interface {
	GetBalance(ctx context.Context, businessID uuid.UUID, accountCode string) (decimal.Decimal, error)
	ListJournalEntries(ctx context.Context, businessID uuid.UUID, limit int) ([]domain.JournalEntry, error)
	TrialBalance(ctx context.Context, businessID uuid.UUID) ([]ledger.TrialBalanceRow, error)
	ListAccounts(ctx context.Context, businessID uuid.UUID) ([]domain.Account, error)
}

type LedgerHandler struct {
	ledger ledgerService
}

func NewLedgerHandler(ledgerSvc ledgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledgerSvc}
}

type journalLineDTO struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"account_id"`
	LineNo      int             `json:"line_no"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

type journalEntryDTO struct {
	ID            uuid.UUID        `json:"id"`
	TransactionID *uuid.UUID       `json:"transaction_id,omitempty"`
	Date          time.Time        `json:"date"`
	Description   string           `json:"description"`
	Lines         []journalLineDTO `json:"lines"`
	CreatedAt     time.Time        `json:"created_at"`
}

func toJournalEntryDTO(e *domain.JournalEntry) journalEntryDTO {
	lines := make([]journalLineDTO, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = journalLineDTO{
			ID:          l.ID,
			AccountID:   l.AccountID,
			LineNo:      l.LineNo,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return journalEntryDTO{
		ID:            e.ID,
		TransactionID: e.TransactionID,
		Date:          e.Date,
		Description:   e.Description,
		Lines:         lines,
		CreatedAt:     e.CreatedAt,
	}
}

func (h *LedgerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	businessID, appErr := businessFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	code := r.PathValue("code")
	if code == "" {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	balance, err := h.ledger.GetBalance(r.Context(), businessID, code)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to get balance", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]any{
		"account_code": code,
		"balance":      balance,
	})
}

func (h *LedgerHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	businessID, appErr := businessFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	entries, err := h.ledger.ListJournalEntries(r.Context(), businessID, limit)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list journal entries", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]journalEntryDTO, len(entries))
	for i := range entries {
		dtos[i] = toJournalEntryDTO(&entries[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

type trialBalanceRowDTO struct {
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	AccountType string          `json:"account_type"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"`
}

func (h *LedgerHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	businessID, appErr := businessFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	rows, err := h.ledger.TrialBalance(r.Context(), businessID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to compute trial balance", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]trialBalanceRowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = trialBalanceRowDTO{
			AccountCode: row.Account.Code,
			AccountName: row.Account.Name,
			AccountType: string(row.Account.Type),
			TotalDebit:  row.TotalDebit,
			TotalCredit: row.TotalCredit,
			Balance:     row.Balance,
		}
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

type accountDTO struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
	Type string    `json:"type"`
}

func (h *LedgerHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	businessID, appErr := businessFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	accounts, err := h.ledger.ListAccounts(r.Context(), businessID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list accounts", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]accountDTO, len(accounts))
	for i, a := range accounts {
		dtos[i] = accountDTO{ID: a.ID, Code: a.Code, Name: a.Name, Type: string(a.Type)}
	}

	RespondSuccess(w, http.StatusOK, dtos)
}
