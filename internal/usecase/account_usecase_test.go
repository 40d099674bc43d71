package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
	"github.com/iho/finledger/internal/usecase/mocks"
)

func TestAccountUseCase_CreateAccount(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(accountRepo)

	account, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Name:     "Checking",
		Currency: "USD",
	}, 7)

	require.NoError(t, err)
	assert.NotZero(t, account.ID)
	assert.Equal(t, int64(7), account.UserID)
	assert.Equal(t, domain.AccountTypeDebit, account.Type, "type defaults to debit")
	assert.True(t, account.Balance.IsZero(), "new accounts open with a zero balance")
}

func TestAccountUseCase_CreateAccountEmptyName(t *testing.T) {
	uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository())

	_, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{Currency: "USD"}, 7)

	require.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestAccountUseCase_GetAccountScopedToOwner(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(&domain.Account{ID: 1, UserID: 7, Name: "Mine", Balance: decimal.Zero})
	uc := usecase.NewAccountUseCase(accountRepo)

	_, err := uc.GetAccount(context.Background(), 1, 99)

	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountUseCase_UpdateAccountIgnoresBalance(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(&domain.Account{ID: 1, UserID: 7, Name: "Old", Balance: decimal.RequireFromString("55.00")})
	uc := usecase.NewAccountUseCase(accountRepo)

	name := "Renamed"
	savings := domain.AccountTypeSavings
	account, err := uc.UpdateAccount(context.Background(), 1, usecase.UpdateAccountInput{
		Name: &name,
		Type: &savings,
	}, 7)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", account.Name)
	assert.Equal(t, domain.AccountTypeSavings, account.Type)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("55.00")), "metadata updates never move balances")
}

func TestAccountUseCase_DeleteAccount(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(&domain.Account{ID: 1, UserID: 7, Name: "Mine", Balance: decimal.Zero})
	uc := usecase.NewAccountUseCase(accountRepo)

	require.NoError(t, uc.DeleteAccount(context.Background(), 1, 7))
	assert.Nil(t, accountRepo.Account(1))

	err := uc.DeleteAccount(context.Background(), 1, 7)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(&domain.Account{ID: 1, UserID: 7, Balance: decimal.Zero})
	accountRepo.Seed(&domain.Account{ID: 2, UserID: 7, Balance: decimal.Zero})
	accountRepo.Seed(&domain.Account{ID: 3, UserID: 99, Balance: decimal.Zero})
	uc := usecase.NewAccountUseCase(accountRepo)

	accounts, err := uc.ListAccounts(context.Background(), 7)

	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}
