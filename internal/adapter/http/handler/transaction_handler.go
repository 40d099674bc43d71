package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/metrics"
	"github.com/iho/finledger/internal/usecase"
)

// TransactionUseCase defines the transaction operations used by the handler.
type TransactionUseCase interface {
	CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput, userID int64) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id, userID int64) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, input usecase.UpdateTransactionInput, userID int64) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id, userID int64) error
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput, userID int64) (*usecase.PaginatedTransactions, error)
}

// TransactionHandler handles transaction HTTP requests.
type TransactionHandler struct {
	useCase TransactionUseCase
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(useCase TransactionUseCase, m *metrics.Metrics, logger zerolog.Logger) *TransactionHandler {
	return &TransactionHandler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Create handles POST /api/v1/transactions.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.useCase.CreateTransaction(r.Context(), req.ToUseCaseInput(), userID)
	if err != nil {
		h.metrics.TransactionErrors.WithLabelValues("create").Inc()
		h.logger.Warn().Err(err).Int64("user_id", userID).Msg("create transaction failed")
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	h.metrics.TransactionsCreated.Inc()
	h.metrics.TransactionAmount.Observe(txn.Amount.InexactFloat64())

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Get handles GET /api/v1/transactions/{id}.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id", "")
		return
	}

	txn, err := h.useCase.GetTransaction(r.Context(), id, userID)
	if err != nil {
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// Update handles PATCH /api/v1/transactions/{id}.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id", "")
		return
	}

	var req dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.useCase.UpdateTransaction(r.Context(), id, req.ToUseCaseInput(), userID)
	if err != nil {
		h.metrics.TransactionErrors.WithLabelValues("update").Inc()
		h.logger.Warn().Err(err).Int64("user_id", userID).Int64("transaction_id", id).Msg("update transaction failed")
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	h.metrics.TransactionsUpdated.Inc()

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// Delete handles DELETE /api/v1/transactions/{id}.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id", "")
		return
	}

	if err := h.useCase.DeleteTransaction(r.Context(), id, userID); err != nil {
		h.metrics.TransactionErrors.WithLabelValues("delete").Inc()
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	h.metrics.TransactionsDeleted.Inc()

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/v1/transactions.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	input := usecase.ListTransactionsInput{
		Filter: filterFromQuery(r),
		Page:   parseIntQuery(r, "page", 1),
		Limit:  parseIntQuery(r, "limit", 20),
	}

	page, err := h.useCase.ListTransactions(r.Context(), input, userID)
	if err != nil {
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	writeJSON(w, http.StatusOK, dto.PaginatedTransactionsFromDomain(page))
}

// filterFromQuery builds a transaction filter from list query parameters.
// Unparseable values are ignored rather than rejected.
func filterFromQuery(r *http.Request) usecase.TransactionFilter {
	var filter usecase.TransactionFilter

	query := r.URL.Query()

	if v := query.Get("account_id"); v != "" {
		if id, err := parseQueryInt64(v); err == nil {
			filter.AccountID = &id
		}
	}
	if v := query.Get("category_id"); v != "" {
		if id, err := parseQueryInt64(v); err == nil {
			filter.CategoryID = &id
		}
	}
	if v := query.Get("type"); v != "" {
		txnType := domain.TransactionType(v)
		filter.Type = &txnType
	}
	if v := query.Get("start_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := query.Get("end_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.EndDate = &t
		}
	}
	if v := query.Get("amount"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.Amount = &d
		}
	}
	if v := query.Get("min_amount"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MinAmount = &d
		}
	}
	if v := query.Get("max_amount"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MaxAmount = &d
		}
	}

	return filter
}
