package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/infrastructure/metrics"
	"github.com/iho/finledger/internal/usecase"
)

// LedgerUseCase defines the consistency operations used by the handler.
type LedgerUseCase interface {
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
}

// LedgerHandler handles ledger consistency HTTP requests.
type LedgerHandler struct {
	useCase LedgerUseCase
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(useCase LedgerUseCase, m *metrics.Metrics, logger zerolog.Logger) *LedgerHandler {
	return &LedgerHandler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// CheckConsistency handles GET /api/v1/ledger/consistency. It compares every
// account balance against the signed sum of its ledger records.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.useCase.CheckConsistency(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("consistency check failed")
		writeError(w, mapDomainError(err), err.Error(), "")
		return
	}

	h.metrics.ConsistencyChecks.Inc()
	h.metrics.DriftedAccounts.Set(float64(len(report.Drift)))

	if !report.Consistent {
		h.logger.Warn().Int("drifted_accounts", len(report.Drift)).Msg("ledger drift detected")
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyReportFromDomain(report))
}
