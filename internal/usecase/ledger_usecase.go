package usecase

import (
	"context"
	"time"
)

// LedgerUseCase handles ledger-wide consistency checks.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo}
}

// ConsistencyReport is the result of a ledger-wide consistency check.
type ConsistencyReport struct {
	Consistent bool
	Drift      []AccountDrift
	CheckedAt  time.Time
}

// CheckConsistency recomputes each account's signed ledger sum and compares
// it to the stored balance. A consistent ledger reports no drifted accounts.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	drift, err := uc.ledgerRepo.FindDrift(ctx)
	if err != nil {
		return nil, err
	}

	return &ConsistencyReport{
		Consistent: len(drift) == 0,
		Drift:      drift,
		CheckedAt:  time.Now().UTC(),
	}, nil
}
