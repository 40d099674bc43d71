package usecase

import (
	"context"
	"fmt"

	"github.com/iho/finledger/internal/domain"
)

// TransactionValidator checks every domain invariant of a candidate record
// before any balance mutation starts: ownership, transfer target rules and
// category polarity. Ownership failures are reported as not-found so the API
// never leaks whether a foreign account exists.
type TransactionValidator struct {
	accountRepo  AccountRepository
	categoryRepo CategoryRepository
}

// NewTransactionValidator creates a new TransactionValidator.
func NewTransactionValidator(accountRepo AccountRepository, categoryRepo CategoryRepository) *TransactionValidator {
	return &TransactionValidator{
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

// Validate confirms that the candidate record may be written on behalf of
// userID. It runs entirely before any scope opens, so a violation can never
// leave a partial balance mutation behind.
func (v *TransactionValidator) Validate(ctx context.Context, candidate *domain.Transaction, userID int64) error {
	if err := domain.ValidateUserID(userID); err != nil {
		return err
	}

	if err := candidate.Validate(); err != nil {
		return err
	}

	source, err := v.accountRepo.GetByIDAndUser(ctx, candidate.AccountID, userID)
	if err != nil {
		return err
	}

	if candidate.Type == domain.TransactionTypeTransfer {
		return v.validateTransfer(ctx, candidate, source, userID)
	}

	if candidate.AccountToID != nil {
		return fmt.Errorf("%w: target account can only be used for transfers", domain.ErrInvalidRequest)
	}

	return v.validateCategory(ctx, candidate, userID)
}

func (v *TransactionValidator) validateTransfer(ctx context.Context, candidate *domain.Transaction, source *domain.Account, userID int64) error {
	if candidate.CategoryID != nil {
		return fmt.Errorf("%w: transfers cannot have a category", domain.ErrInvalidRequest)
	}

	target, err := v.accountRepo.GetByIDAndUser(ctx, *candidate.AccountToID, userID)
	if err != nil {
		return err
	}

	if source.Currency != target.Currency {
		return domain.ErrCurrencyMismatch
	}

	return nil
}

func (v *TransactionValidator) validateCategory(ctx context.Context, candidate *domain.Transaction, userID int64) error {
	if candidate.CategoryID == nil {
		return nil
	}

	category, err := v.categoryRepo.GetByID(ctx, *candidate.CategoryID)
	if err != nil {
		return err
	}

	// Shared default categories have no owner.
	if category.UserID != 0 && category.UserID != userID {
		return domain.ErrCategoryNotFound
	}

	if !category.Matches(candidate.Type) {
		return fmt.Errorf("%w: category is %s but transaction is %s",
			domain.ErrCategoryTypeMismatch, category.Type, candidate.Type)
	}

	return nil
}
