package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/finledger/internal/domain"
)

func baseTransaction() *domain.Transaction {
	return &domain.Transaction{
		ID:        1,
		Amount:    decimal.RequireFromString("25.00"),
		Type:      domain.TransactionTypeExpense,
		AccountID: 1,
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Title:     "coffee",
	}
}

func TestTransactionValidate(t *testing.T) {
	id := func(v int64) *int64 { return &v }

	tests := []struct {
		name    string
		mutate  func(*domain.Transaction)
		wantErr error
	}{
		{name: "valid expense"},
		{
			name: "valid transfer",
			mutate: func(txn *domain.Transaction) {
				txn.Type = domain.TransactionTypeTransfer
				txn.AccountToID = id(2)
			},
		},
		{
			name:    "unknown type",
			mutate:  func(txn *domain.Transaction) { txn.Type = "refund" },
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "negative amount",
			mutate:  func(txn *domain.Transaction) { txn.Amount = decimal.RequireFromString("-5.00") },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "amount below minimum",
			mutate:  func(txn *domain.Transaction) { txn.Amount = decimal.RequireFromString("0.005") },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "amount above maximum",
			mutate:  func(txn *domain.Transaction) { txn.Amount = decimal.RequireFromString("1000000.00") },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "blank title",
			mutate:  func(txn *domain.Transaction) { txn.Title = "   " },
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "title too long",
			mutate:  func(txn *domain.Transaction) { txn.Title = strings.Repeat("x", domain.MaxTitleLength+1) },
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name: "description too long",
			mutate: func(txn *domain.Transaction) {
				txn.Description = strings.Repeat("x", domain.MaxDescriptionLength+1)
			},
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "transfer without target",
			mutate:  func(txn *domain.Transaction) { txn.Type = domain.TransactionTypeTransfer },
			wantErr: domain.ErrTransferTargetRequired,
		},
		{
			name: "transfer to the same account",
			mutate: func(txn *domain.Transaction) {
				txn.Type = domain.TransactionTypeTransfer
				txn.AccountToID = id(1)
			},
			wantErr: domain.ErrSameAccountTransfer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := baseTransaction()
			if tt.mutate != nil {
				tt.mutate(txn)
			}

			err := txn.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestTransactionCriticalChangeFrom(t *testing.T) {
	id := func(v int64) *int64 { return &v }

	tests := []struct {
		name   string
		mutate func(*domain.Transaction)
		want   bool
	}{
		{
			name:   "identical record",
			mutate: func(txn *domain.Transaction) {},
			want:   false,
		},
		{
			name:   "title change",
			mutate: func(txn *domain.Transaction) { txn.Title = "renamed" },
			want:   false,
		},
		{
			name:   "description change",
			mutate: func(txn *domain.Transaction) { txn.Description = "notes" },
			want:   false,
		},
		{
			name:   "date change",
			mutate: func(txn *domain.Transaction) { txn.Date = txn.Date.AddDate(0, 0, 1) },
			want:   false,
		},
		{
			name:   "category change",
			mutate: func(txn *domain.Transaction) { txn.CategoryID = id(5) },
			want:   false,
		},
		{
			name:   "amount change",
			mutate: func(txn *domain.Transaction) { txn.Amount = decimal.RequireFromString("26.00") },
			want:   true,
		},
		{
			name:   "equal amount different scale",
			mutate: func(txn *domain.Transaction) { txn.Amount = decimal.RequireFromString("25") },
			want:   false,
		},
		{
			name:   "type change",
			mutate: func(txn *domain.Transaction) { txn.Type = domain.TransactionTypeIncome },
			want:   true,
		},
		{
			name:   "source account change",
			mutate: func(txn *domain.Transaction) { txn.AccountID = 9 },
			want:   true,
		},
		{
			name:   "target account set",
			mutate: func(txn *domain.Transaction) { txn.AccountToID = id(2) },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := baseTransaction()
			updated := *old
			tt.mutate(&updated)

			require.Equal(t, tt.want, updated.CriticalChangeFrom(old))
		})
	}
}

func TestTransactionCategoryChangedFrom(t *testing.T) {
	id := func(v int64) *int64 { return &v }

	old := baseTransaction()
	old.CategoryID = id(5)

	same := *old
	same.CategoryID = id(5)
	require.False(t, same.CategoryChangedFrom(old))

	cleared := *old
	cleared.CategoryID = nil
	require.True(t, cleared.CategoryChangedFrom(old))

	swapped := *old
	swapped.CategoryID = id(6)
	require.True(t, swapped.CategoryChangedFrom(old))
}
