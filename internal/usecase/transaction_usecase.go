package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// TransactionUseCase orchestrates the ledger record lifecycle. Every create,
// update and delete runs as one atomic unit of work: the record write, the
// balance mutation and the outbox event commit together or not at all.
type TransactionUseCase struct {
	txManager       TransactionManager
	transactionRepo TransactionRepository
	outboxRepo      OutboxRepository
	validator       *TransactionValidator
	engine          BalanceMutator
	idGen           IDGenerator
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	transactionRepo TransactionRepository,
	outboxRepo OutboxRepository,
	validator *TransactionValidator,
	engine BalanceMutator,
	idGen IDGenerator,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		outboxRepo:      outboxRepo,
		validator:       validator,
		engine:          engine,
		idGen:           idGen,
	}
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	Amount      decimal.Decimal
	Type        domain.TransactionType
	AccountID   int64
	AccountToID *int64
	CategoryID  *int64
	Date        time.Time
	Title       string
	Description string
}

// UpdateTransactionInput represents a partial update. Nil fields keep the
// stored value.
type UpdateTransactionInput struct {
	Amount      *decimal.Decimal
	Type        *domain.TransactionType
	AccountID   *int64
	AccountToID *int64
	CategoryID  *int64
	Date        *time.Time
	Title       *string
	Description *string
}

// CreateTransaction validates the request, then persists the record and its
// balance effect in one scope.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput, userID int64) (*domain.Transaction, error) {
	txn := &domain.Transaction{
		Amount:      input.Amount,
		Type:        input.Type,
		AccountID:   input.AccountID,
		AccountToID: input.AccountToID,
		CategoryID:  input.CategoryID,
		Date:        input.Date,
		Title:       input.Title,
		Description: input.Description,
	}

	if err := uc.validator.Validate(ctx, txn, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := uc.engine.Apply(ctx, tx, txn.Type, txn.Amount, txn.AccountID, txn.AccountToID); err != nil {
		return nil, err
	}

	if err := uc.writeOutbox(ctx, tx, domain.EventTypeTransactionCreated, txn, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// GetTransaction retrieves a transaction scoped to its owner.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id, userID int64) (*domain.Transaction, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	return uc.transactionRepo.GetByIDAndUser(ctx, id, userID)
}

// UpdateTransaction overlays the patch onto the stored record, re-validates
// the result and classifies the change. A critical change (amount, type or
// either account) reverts the old balance effect and applies the new one in
// the same scope; a non-critical change never touches balances.
func (uc *TransactionUseCase) UpdateTransaction(ctx context.Context, id int64, input UpdateTransactionInput, userID int64) (*domain.Transaction, error) {
	old, err := uc.GetTransaction(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	candidate := normalize(old, input)

	if err := uc.validator.Validate(ctx, candidate, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	candidate.UpdatedAt = now

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if candidate.CriticalChangeFrom(old) {
		if err := uc.engine.Revert(ctx, tx, old.Type, old.Amount, old.AccountID, old.AccountToID); err != nil {
			return nil, err
		}

		if err := uc.engine.Apply(ctx, tx, candidate.Type, candidate.Amount, candidate.AccountID, candidate.AccountToID); err != nil {
			return nil, err
		}
	}

	if err := uc.transactionRepo.Update(ctx, tx, candidate); err != nil {
		return nil, err
	}

	if err := uc.writeOutbox(ctx, tx, domain.EventTypeTransactionUpdated, candidate, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return candidate, nil
}

// DeleteTransaction reverts the stored balance effect and removes the record
// atomically. The revert always precedes the removal inside the scope.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id, userID int64) error {
	txn, err := uc.GetTransaction(ctx, id, userID)
	if err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.engine.Revert(ctx, tx, txn.Type, txn.Amount, txn.AccountID, txn.AccountToID); err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, tx, txn.ID); err != nil {
		return err
	}

	if err := uc.writeOutbox(ctx, tx, domain.EventTypeTransactionDeleted, txn, time.Now().UTC()); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	Filter TransactionFilter
	Page   int
	Limit  int
}

// PaginatedTransactions is one page of a filtered listing.
type PaginatedTransactions struct {
	Data       []*domain.Transaction
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ListTransactions lists the user's transactions with filters and pagination.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput, userID int64) (*PaginatedTransactions, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	if input.Page <= 0 {
		input.Page = 1
	}

	if input.Limit <= 0 {
		input.Limit = DefaultPageSize
	}

	if input.Limit > MaxPageSize {
		input.Limit = MaxPageSize
	}

	offset := (input.Page - 1) * input.Limit

	txns, total, err := uc.transactionRepo.List(ctx, userID, input.Filter, input.Limit, offset)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(input.Limit) - 1) / int64(input.Limit))

	return &PaginatedTransactions{
		Data:       txns,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// normalize produces a fully populated candidate from the stored record and
// the patch: explicit fields win, everything else keeps its prior value.
func normalize(old *domain.Transaction, input UpdateTransactionInput) *domain.Transaction {
	candidate := *old

	if input.Amount != nil {
		candidate.Amount = *input.Amount
	}

	if input.Type != nil {
		candidate.Type = *input.Type
	}

	if input.AccountID != nil {
		candidate.AccountID = *input.AccountID
	}

	if input.AccountToID != nil {
		candidate.AccountToID = input.AccountToID
	}

	if input.CategoryID != nil {
		candidate.CategoryID = input.CategoryID
	}

	if input.Date != nil {
		candidate.Date = *input.Date
	}

	if input.Title != nil {
		candidate.Title = *input.Title
	}

	if input.Description != nil {
		candidate.Description = *input.Description
	}

	return &candidate
}

func (uc *TransactionUseCase) writeOutbox(ctx context.Context, tx Transaction, eventType string, txn *domain.Transaction, now time.Time) error {
	if uc.outboxRepo == nil {
		return nil
	}

	payload := map[string]any{
		"transaction_id": txn.ID,
		"type":           string(txn.Type),
		"amount":         txn.Amount.StringFixed(2),
		"account_id":     txn.AccountID,
		"date":           txn.Date.Format(time.DateOnly),
	}
	if txn.AccountToID != nil {
		payload["account_to_id"] = *txn.AccountToID
	}

	return uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   strconv.FormatInt(txn.ID, 10),
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     now,
	})
}
