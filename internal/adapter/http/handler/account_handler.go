package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/metrics"
	"github.com/iho/finledger/internal/usecase"
)

// AccountUseCase defines the account operations used by the handler.
type AccountUseCase interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput, userID int64) (*domain.Account, error)
	GetAccount(ctx context.Context, id, userID int64) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID int64) ([]*domain.Account, error)
	UpdateAccount(ctx context.Context, id int64, input usecase.UpdateAccountInput, userID int64) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id, userID int64) error
}

// AccountHandler handles account HTTP requests.
type AccountHandler struct {
	useCase AccountUseCase
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(useCase AccountUseCase, m *metrics.Metrics, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Create handles POST /api/v1/accounts.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.useCase.CreateAccount(r.Context(), req.ToUseCaseInput(), userID)
	if err != nil {
		h.logger.Warn().Err(err).Int64("user_id", userID).Msg("create account failed")
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	h.metrics.AccountsCreated.Inc()
	h.metrics.AccountOperations.WithLabelValues("create").Inc()

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get handles GET /api/v1/accounts/{id}.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id", "")
		return
	}

	account, err := h.useCase.GetAccount(r.Context(), id, userID)
	if err != nil {
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List handles GET /api/v1/accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	accounts, err := h.useCase.ListAccounts(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Update handles PATCH /api/v1/accounts/{id}.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id", "")
		return
	}

	var req dto.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.useCase.UpdateAccount(r.Context(), id, req.ToUseCaseInput(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	h.metrics.AccountOperations.WithLabelValues("update").Inc()

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Delete handles DELETE /api/v1/accounts/{id}.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id", "")
		return
	}

	if err := h.useCase.DeleteAccount(r.Context(), id, userID); err != nil {
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	h.metrics.AccountOperations.WithLabelValues("delete").Inc()

	w.WriteHeader(http.StatusNoContent)
}
