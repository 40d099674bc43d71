package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger record.
type TransactionType string

const (
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeExpense, TransactionTypeIncome, TransactionTypeTransfer:
		return true
	}
	return false
}

// Transaction is a single recorded financial movement against one account
// (expense, income) or two (transfer). AccountToID is set iff the type is
// transfer; CategoryID is optional and never set on transfers.
type Transaction struct {
	ID          int64
	Amount      decimal.Decimal
	Type        TransactionType
	AccountID   int64
	AccountToID *int64
	CategoryID  *int64
	Date        time.Time
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the structural invariants of the record itself. Ownership
// and category polarity need repository lookups and live in the validator.
func (t *Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidRequest
	}

	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}

	if err := ValidateTitle(t.Title); err != nil {
		return err
	}

	if err := ValidateDescription(t.Description); err != nil {
		return err
	}

	if t.Type == TransactionTypeTransfer {
		if t.AccountToID == nil {
			return ErrTransferTargetRequired
		}
		if *t.AccountToID == t.AccountID {
			return ErrSameAccountTransfer
		}
	}

	return nil
}

// CriticalChangeFrom reports whether applying this record in place of old
// changes any balance-affecting field. A critical change requires reverting
// the old balance effect and applying the new one.
func (t *Transaction) CriticalChangeFrom(old *Transaction) bool {
	if !t.Amount.Equal(old.Amount) || t.Type != old.Type || t.AccountID != old.AccountID {
		return true
	}
	return !equalID(t.AccountToID, old.AccountToID)
}

// CategoryChangedFrom reports whether the category reference differs from old.
func (t *Transaction) CategoryChangedFrom(old *Transaction) bool {
	return !equalID(t.CategoryID, old.CategoryID)
}

func equalID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
