package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
	"github.com/iho/finledger/internal/usecase/mocks"
)

func newEngineFixture(t *testing.T) (*usecase.BalanceEngine, *mocks.MockAccountRepository) {
	t.Helper()

	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(&domain.Account{ID: 1, UserID: 7, Balance: decimal.RequireFromString("100.00"), Currency: "USD"})
	accountRepo.Seed(&domain.Account{ID: 2, UserID: 7, Balance: decimal.RequireFromString("0.00"), Currency: "USD"})

	return usecase.NewBalanceEngine(accountRepo), accountRepo
}

func TestBalanceEngine_Apply(t *testing.T) {
	ctx := context.Background()
	two := int64(2)

	tests := []struct {
		name        string
		txnType     domain.TransactionType
		amount      string
		accountToID *int64
		wantSource  string
		wantTarget  string
		wantErr     error
	}{
		{
			name:       "expense debits source",
			txnType:    domain.TransactionTypeExpense,
			amount:     "30.00",
			wantSource: "70.00",
			wantTarget: "0.00",
		},
		{
			name:       "income credits source",
			txnType:    domain.TransactionTypeIncome,
			amount:     "30.00",
			wantSource: "130.00",
			wantTarget: "0.00",
		},
		{
			name:        "transfer moves amount between accounts",
			txnType:     domain.TransactionTypeTransfer,
			amount:      "30.00",
			accountToID: &two,
			wantSource:  "70.00",
			wantTarget:  "30.00",
		},
		{
			name:       "expense exceeding balance fails",
			txnType:    domain.TransactionTypeExpense,
			amount:     "150.00",
			wantSource: "100.00",
			wantTarget: "0.00",
			wantErr:    domain.ErrInsufficientBalance,
		},
		{
			name:        "transfer exceeding balance fails",
			txnType:     domain.TransactionTypeTransfer,
			amount:      "150.00",
			accountToID: &two,
			wantSource:  "100.00",
			wantTarget:  "0.00",
			wantErr:     domain.ErrInsufficientBalance,
		},
		{
			name:       "transfer without target fails",
			txnType:    domain.TransactionTypeTransfer,
			amount:     "30.00",
			wantSource: "100.00",
			wantTarget: "0.00",
			wantErr:    domain.ErrTransferTargetRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, accountRepo := newEngineFixture(t)

			err := engine.Apply(ctx, &mocks.MockTransaction{}, tt.txnType, decimal.RequireFromString(tt.amount), 1, tt.accountToID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.True(t, accountRepo.Account(1).Balance.Equal(decimal.RequireFromString(tt.wantSource)),
				"source balance = %s, want %s", accountRepo.Account(1).Balance, tt.wantSource)
			assert.True(t, accountRepo.Account(2).Balance.Equal(decimal.RequireFromString(tt.wantTarget)),
				"target balance = %s, want %s", accountRepo.Account(2).Balance, tt.wantTarget)
		})
	}
}

func TestBalanceEngine_ApplySameAccountTransfer(t *testing.T) {
	engine, _ := newEngineFixture(t)

	one := int64(1)
	err := engine.Apply(context.Background(), &mocks.MockTransaction{}, domain.TransactionTypeTransfer,
		decimal.RequireFromString("10.00"), 1, &one)

	require.ErrorIs(t, err, domain.ErrSameAccountTransfer)
}

func TestBalanceEngine_ApplyMissingAccount(t *testing.T) {
	engine, _ := newEngineFixture(t)

	missing := int64(99)
	err := engine.Apply(context.Background(), &mocks.MockTransaction{}, domain.TransactionTypeTransfer,
		decimal.RequireFromString("10.00"), 1, &missing)

	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestBalanceEngine_RevertIsInverseOfApply(t *testing.T) {
	ctx := context.Background()
	two := int64(2)

	tests := []struct {
		name        string
		txnType     domain.TransactionType
		accountToID *int64
	}{
		{name: "expense", txnType: domain.TransactionTypeExpense},
		{name: "income", txnType: domain.TransactionTypeIncome},
		{name: "transfer", txnType: domain.TransactionTypeTransfer, accountToID: &two},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, accountRepo := newEngineFixture(t)
			amount := decimal.RequireFromString("42.50")

			require.NoError(t, engine.Apply(ctx, &mocks.MockTransaction{}, tt.txnType, amount, 1, tt.accountToID))
			require.NoError(t, engine.Revert(ctx, &mocks.MockTransaction{}, tt.txnType, amount, 1, tt.accountToID))

			assert.True(t, accountRepo.Account(1).Balance.Equal(decimal.RequireFromString("100.00")))
			assert.True(t, accountRepo.Account(2).Balance.Equal(decimal.Zero))
		})
	}
}

func TestBalanceEngine_RevertSkipsSufficiencyCheck(t *testing.T) {
	// Reverting a historical income may push the balance below the amount
	// involved; reverting an expense must restore funds unconditionally.
	engine, accountRepo := newEngineFixture(t)
	ctx := context.Background()

	err := engine.Revert(ctx, &mocks.MockTransaction{}, domain.TransactionTypeIncome,
		decimal.RequireFromString("150.00"), 1, nil)

	require.NoError(t, err)
	assert.True(t, accountRepo.Account(1).Balance.Equal(decimal.RequireFromString("-50.00")))
}

func TestBalanceEngine_InsufficientBalanceDetails(t *testing.T) {
	engine, _ := newEngineFixture(t)

	err := engine.Apply(context.Background(), &mocks.MockTransaction{}, domain.TransactionTypeExpense,
		decimal.RequireFromString("150.00"), 1, nil)

	var insufficientErr *domain.InsufficientBalanceError
	require.True(t, errors.As(err, &insufficientErr))
	assert.True(t, insufficientErr.Current.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, insufficientErr.Required.Equal(decimal.RequireFromString("150.00")))
}

func TestBalanceEngine_LocksAccountsInAscendingOrder(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(&domain.Account{ID: 5, UserID: 7, Balance: decimal.RequireFromString("50.00")})
	accountRepo.Seed(&domain.Account{ID: 3, UserID: 7, Balance: decimal.Zero})

	var lockedIDs []int64
	accountRepo.GetByIDsForUpdateFunc = func(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error) {
		lockedIDs = append([]int64(nil), ids...)

		var accounts []*domain.Account
		for _, id := range ids {
			if acc := accountRepo.Account(id); acc != nil {
				accounts = append(accounts, acc)
			}
		}
		return accounts, nil
	}

	engine := usecase.NewBalanceEngine(accountRepo)
	three := int64(3)

	err := engine.Apply(context.Background(), &mocks.MockTransaction{}, domain.TransactionTypeTransfer,
		decimal.RequireFromString("10.00"), 5, &three)

	require.NoError(t, err)
	require.Equal(t, []int64{3, 5}, lockedIDs)
}

func TestBalanceEngine_SecondLegWriteFailureStopsApply(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(&domain.Account{ID: 1, UserID: 7, Balance: decimal.RequireFromString("100.00")})
	accountRepo.Seed(&domain.Account{ID: 2, UserID: 7, Balance: decimal.Zero})

	writeErr := errors.New("write failed")
	accountRepo.UpdateBalanceFunc = func(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error {
		if id == 2 {
			return writeErr
		}
		return nil
	}

	engine := usecase.NewBalanceEngine(accountRepo)
	two := int64(2)

	err := engine.Apply(context.Background(), &mocks.MockTransaction{}, domain.TransactionTypeTransfer,
		decimal.RequireFromString("30.00"), 1, &two)

	require.ErrorIs(t, err, writeErr)
}
