package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// Transfer errors
	ErrTransferTargetRequired = errors.New("target account is required for transfers")
	ErrSameAccountTransfer    = errors.New("cannot transfer to the same account")
	ErrCurrencyMismatch       = errors.New("cannot transfer between different currencies")

	// Category errors
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryTypeMismatch = errors.New("category type does not match transaction type")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyTaken  = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)

// InsufficientBalanceError reports the balance an account holds against the
// amount a debit requires. It unwraps to ErrInsufficientBalance.
type InsufficientBalanceError struct {
	Current  decimal.Decimal
	Required decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: account has %s but needs %s",
		e.Current.StringFixed(2), e.Required.StringFixed(2))
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
