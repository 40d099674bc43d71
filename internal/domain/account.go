package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountTypeDebit      AccountType = "debit"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeInvestment AccountType = "investment"
)

// Account is a user-owned account holding a running balance. The balance is
// mutated only by the balance engine; every other component treats it as
// read-only.
type Account struct {
	ID         int64
	UserID     int64
	Name       string
	Balance    decimal.Decimal
	Type       AccountType
	Currency   string
	Icon       string
	Background string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidateDebit checks if the account holds enough balance for a debit.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return &InsufficientBalanceError{Current: a.Balance, Required: amount}
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
