package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/finledger/internal/adapter/http/handler"
	"github.com/iho/finledger/internal/adapter/http/middleware"
	"github.com/iho/finledger/internal/infrastructure/auth"
)

// RouterDeps carries everything the router needs.
type RouterDeps struct {
	TransactionHandler *handler.TransactionHandler
	AccountHandler     *handler.AccountHandler
	CategoryHandler    *handler.CategoryHandler
	LedgerHandler      *handler.LedgerHandler
	AuthHandler        *handler.AuthHandler
	HealthHandler      *handler.HealthHandler

	JWTManager  *auth.JWTManager
	Idempotency *middleware.IdempotencyMiddleware
	RateLimiter *middleware.RateLimiter
	Logger      zerolog.Logger
}

// NewRouter builds the HTTP routing tree.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(deps.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Limit)
	}

	r.Get("/health", deps.HealthHandler.Liveness)
	r.Get("/ready", deps.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.AuthHandler.Register)
			r.Post("/login", deps.AuthHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(deps.JWTManager))
			if deps.Idempotency != nil {
				r.Use(deps.Idempotency.Wrap)
			}

			r.Route("/transactions", func(r chi.Router) {
				r.Post("/", deps.TransactionHandler.Create)
				r.Get("/", deps.TransactionHandler.List)
				r.Get("/{id}", deps.TransactionHandler.Get)
				r.Patch("/{id}", deps.TransactionHandler.Update)
				r.Delete("/{id}", deps.TransactionHandler.Delete)
			})

			r.Route("/accounts", func(r chi.Router) {
				r.Post("/", deps.AccountHandler.Create)
				r.Get("/", deps.AccountHandler.List)
				r.Get("/{id}", deps.AccountHandler.Get)
				r.Patch("/{id}", deps.AccountHandler.Update)
				r.Delete("/{id}", deps.AccountHandler.Delete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", deps.CategoryHandler.Create)
				r.Get("/", deps.CategoryHandler.List)
				r.Get("/{id}", deps.CategoryHandler.Get)
			})

			r.Get("/ledger/consistency", deps.LedgerHandler.CheckConsistency)
		})
	})

	return r
}
