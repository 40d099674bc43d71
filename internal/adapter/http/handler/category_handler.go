package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// CategoryUseCase defines the category operations used by the handler.
type CategoryUseCase interface {
	ListCategories(ctx context.Context, userID int64) ([]*domain.Category, error)
	ListCategoriesByType(ctx context.Context, userID int64, categoryType domain.CategoryType) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id, userID int64) (*domain.Category, error)
	CreateCategory(ctx context.Context, input usecase.CreateCategoryInput, userID int64) (*domain.Category, error)
}

// CategoryHandler handles category HTTP requests.
type CategoryHandler struct {
	useCase CategoryUseCase
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(useCase CategoryUseCase, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// List handles GET /api/v1/categories. An optional "type" query parameter
// restricts the listing to income or expense categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var (
		categories []*domain.Category
		err        error
	)

	if typeParam := r.URL.Query().Get("type"); typeParam != "" {
		categories, err = h.useCase.ListCategoriesByType(r.Context(), userID, domain.CategoryType(typeParam))
	} else {
		categories, err = h.useCase.ListCategories(r.Context(), userID)
	}
	if err != nil {
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(categories))
}

// Get handles GET /api/v1/categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id", "")
		return
	}

	category, err := h.useCase.GetCategory(r.Context(), id, userID)
	if err != nil {
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// Create handles POST /api/v1/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.useCase.CreateCategory(r.Context(), req.ToUseCaseInput(), userID)
	if err != nil {
		h.logger.Warn().Err(err).Int64("user_id", userID).Msg("create category failed")
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	writeJSON(w, http.StatusCreated, dto.CategoryFromDomain(category))
}
