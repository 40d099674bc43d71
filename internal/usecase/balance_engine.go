package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// BalanceEngine owns every account balance write. It translates a
// (type, amount, source, target) tuple into one or two balance deltas and
// persists them inside the caller's scope, locking the touched account rows
// for the duration of that scope. No other component writes balances.
type BalanceEngine struct {
	accountRepo AccountRepository
}

// NewBalanceEngine creates a new BalanceEngine.
func NewBalanceEngine(accountRepo AccountRepository) *BalanceEngine {
	return &BalanceEngine{accountRepo: accountRepo}
}

// Apply applies the balance effect of a transaction:
//
//	expense:  source -= amount
//	income:   source += amount
//	transfer: source -= amount, target += amount
//
// Debits (expense, the source leg of a transfer) fail with an
// InsufficientBalanceError when the locked balance cannot cover the amount.
func (e *BalanceEngine) Apply(ctx context.Context, tx Transaction, txnType domain.TransactionType, amount decimal.Decimal, accountID int64, accountToID *int64) error {
	accounts, err := e.lockAccounts(ctx, tx, txnType, accountID, accountToID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	source := accounts[accountID]

	switch txnType {
	case domain.TransactionTypeExpense:
		if err := source.ValidateDebit(amount); err != nil {
			return err
		}

		return e.writeBalance(ctx, tx, source, source.ApplyDebit(amount), now)

	case domain.TransactionTypeIncome:
		return e.writeBalance(ctx, tx, source, source.ApplyCredit(amount), now)

	case domain.TransactionTypeTransfer:
		if err := source.ValidateDebit(amount); err != nil {
			return err
		}

		target := accounts[*accountToID]
		if err := e.writeBalance(ctx, tx, source, source.ApplyDebit(amount), now); err != nil {
			return err
		}

		return e.writeBalance(ctx, tx, target, target.ApplyCredit(amount), now)
	}

	return domain.ErrInvalidRequest
}

// Revert undoes the balance effect of a previously applied transaction. It is
// the exact inverse of Apply for the same tuple and never checks sufficiency:
// reverting a historical debit must restore the balance unconditionally.
func (e *BalanceEngine) Revert(ctx context.Context, tx Transaction, txnType domain.TransactionType, amount decimal.Decimal, accountID int64, accountToID *int64) error {
	accounts, err := e.lockAccounts(ctx, tx, txnType, accountID, accountToID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	source := accounts[accountID]

	switch txnType {
	case domain.TransactionTypeExpense:
		return e.writeBalance(ctx, tx, source, source.ApplyCredit(amount), now)

	case domain.TransactionTypeIncome:
		return e.writeBalance(ctx, tx, source, source.ApplyDebit(amount), now)

	case domain.TransactionTypeTransfer:
		target := accounts[*accountToID]
		if err := e.writeBalance(ctx, tx, source, source.ApplyCredit(amount), now); err != nil {
			return err
		}

		return e.writeBalance(ctx, tx, target, target.ApplyDebit(amount), now)
	}

	return domain.ErrInvalidRequest
}

// lockAccounts acquires FOR UPDATE locks on every account the mutation
// touches, in ascending id order so concurrent mutations cannot deadlock.
func (e *BalanceEngine) lockAccounts(ctx context.Context, tx Transaction, txnType domain.TransactionType, accountID int64, accountToID *int64) (map[int64]*domain.Account, error) {
	ids := []int64{accountID}

	if txnType == domain.TransactionTypeTransfer {
		if accountToID == nil {
			return nil, domain.ErrTransferTargetRequired
		}

		if *accountToID == accountID {
			return nil, domain.ErrSameAccountTransfer
		}

		ids = append(ids, *accountToID)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	accounts, err := e.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	byID := make(map[int64]*domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	return byID, nil
}

func (e *BalanceEngine) writeBalance(ctx context.Context, tx Transaction, account *domain.Account, balance decimal.Decimal, now time.Time) error {
	if err := e.accountRepo.UpdateBalance(ctx, tx, account.ID, balance, now); err != nil {
		return err
	}

	account.Balance = balance

	return nil
}
