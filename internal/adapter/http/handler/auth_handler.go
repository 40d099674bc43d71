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

// UserUseCase defines the user operations used by the handler.
type UserUseCase interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// TokenIssuer issues access tokens for authenticated users.
type TokenIssuer interface {
	Generate(user *domain.User) (string, error)
}

// AuthHandler handles registration and login HTTP requests.
type AuthHandler struct {
	useCase UserUseCase
	tokens  TokenIssuer
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(useCase UserUseCase, tokens TokenIssuer, m *metrics.Metrics, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		useCase: useCase,
		tokens:  tokens,
		metrics: m,
		logger:  logger,
	}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.useCase.Register(r.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.metrics.AuthAttempts.WithLabelValues("register_failed").Inc()
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", user.ID).Msg("token generation failed")
		writeError(w, http.StatusInternalServerError, "failed to issue token", "")
		return
	}

	h.metrics.AuthAttempts.WithLabelValues("registered").Inc()

	writeJSON(w, http.StatusCreated, dto.TokenResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.useCase.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.AuthAttempts.WithLabelValues("failed").Inc()
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", user.ID).Msg("token generation failed")
		writeError(w, http.StatusInternalServerError, "failed to issue token", "")
		return
	}

	h.metrics.AuthAttempts.WithLabelValues("success").Inc()

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	})
}
