package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MinTransactionAmount = "0.01"
	MaxTransactionAmount = "999999.99"
	MaxTitleLength       = 255
	MinTitleLength       = 1
	MaxDescriptionLength = 1000
	MaxAccountNameLength = 100
)

var (
	minAmount, _ = decimal.NewFromString(MinTransactionAmount)
	maxAmount, _ = decimal.NewFromString(MaxTransactionAmount)
)

// ValidateAmount validates a transaction amount against the allowed bounds.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: minimum amount is %s", ErrInvalidAmount, MinTransactionAmount)
	}

	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxTransactionAmount)
	}

	return nil
}

// ValidateTitle validates a transaction title.
func ValidateTitle(title string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(title))

	if n < MinTitleLength {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidRequest)
	}

	if n > MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidRequest, MaxTitleLength)
	}

	return nil
}

// ValidateDescription validates a transaction description.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidRequest, MaxDescriptionLength)
	}

	return nil
}

// ValidateAccountName validates an account name.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: account name cannot be empty", ErrInvalidRequest)
	}

	if utf8.RuneCountInString(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: account name exceeds %d characters", ErrInvalidRequest, MaxAccountNameLength)
	}

	return nil
}

// ValidateUserID validates an acting user id.
func ValidateUserID(userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("%w: user id is required", ErrInvalidRequest)
	}

	return nil
}
