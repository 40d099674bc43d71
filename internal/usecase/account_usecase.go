package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// AccountUseCase handles account CRUD. It never writes balances: an account's
// balance only moves through the balance engine.
type AccountUseCase struct {
	accountRepo AccountRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository) *AccountUseCase {
	return &AccountUseCase{accountRepo: accountRepo}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name       string
	Type       domain.AccountType
	Currency   string
	Icon       string
	Background string
}

// CreateAccount creates an account for the user with a zero balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput, userID int64) (*domain.Account, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	if input.Type == "" {
		input.Type = domain.AccountTypeDebit
	}

	now := time.Now().UTC()
	account := &domain.Account{
		UserID:     userID,
		Name:       input.Name,
		Balance:    decimal.Zero,
		Type:       input.Type,
		Currency:   input.Currency,
		Icon:       input.Icon,
		Background: input.Background,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account scoped to its owner.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id, userID int64) (*domain.Account, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	return uc.accountRepo.GetByIDAndUser(ctx, id, userID)
}

// ListAccounts lists the user's accounts.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, userID int64) ([]*domain.Account, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	return uc.accountRepo.ListByUser(ctx, userID)
}

// UpdateAccountInput represents a partial account update. Balance is absent
// on purpose.
type UpdateAccountInput struct {
	Name       *string
	Type       *domain.AccountType
	Icon       *string
	Background *string
}

// UpdateAccount updates account metadata.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, id int64, input UpdateAccountInput, userID int64) (*domain.Account, error) {
	account, err := uc.GetAccount(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := domain.ValidateAccountName(*input.Name); err != nil {
			return nil, err
		}

		account.Name = *input.Name
	}

	if input.Type != nil {
		account.Type = *input.Type
	}

	if input.Icon != nil {
		account.Icon = *input.Icon
	}

	if input.Background != nil {
		account.Background = *input.Background
	}

	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// DeleteAccount removes an account. Accounts still referenced by ledger
// records are protected by foreign keys.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id, userID int64) error {
	if err := domain.ValidateUserID(userID); err != nil {
		return err
	}

	return uc.accountRepo.Delete(ctx, id, userID)
}
