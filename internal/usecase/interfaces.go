package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByIDAndUser(ctx context.Context, id, userID int64) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []int64) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id, userID int64) error
	ListByUser(ctx context.Context, userID int64) ([]*domain.Account, error)
}

// TransactionFilter narrows transaction listings. Nil fields are ignored.
type TransactionFilter struct {
	AccountID  *int64
	CategoryID *int64
	Type       *domain.TransactionType
	StartDate  *time.Time
	EndDate    *time.Time
	Amount     *decimal.Decimal
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
}

// TransactionRepository defines data access for ledger records.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByIDAndUser(ctx context.Context, id, userID int64) (*domain.Transaction, error)
	Update(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	Delete(ctx context.Context, tx Transaction, id int64) error
	List(ctx context.Context, userID int64, filter TransactionFilter, limit, offset int) ([]*domain.Transaction, int64, error)
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	ListVisible(ctx context.Context, userID int64) ([]*domain.Category, error)
	ListVisibleByType(ctx context.Context, userID int64, categoryType domain.CategoryType) ([]*domain.Category, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AccountDrift describes an account whose stored balance disagrees with the
// signed sum of its ledger records.
type AccountDrift struct {
	AccountID  int64
	Balance    decimal.Decimal
	LedgerSum  decimal.Decimal
	Difference decimal.Decimal
}

// LedgerRepository defines ledger-wide queries.
type LedgerRepository interface {
	FindDrift(ctx context.Context) ([]AccountDrift, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// BalanceMutator applies and reverts the balance effect of a transaction
// inside a caller-supplied scope. Revert is the exact algebraic inverse of
// Apply for the same tuple.
type BalanceMutator interface {
	Apply(ctx context.Context, tx Transaction, txnType domain.TransactionType, amount decimal.Decimal, accountID int64, accountToID *int64) error
	Revert(ctx context.Context, tx Transaction, txnType domain.TransactionType, amount decimal.Decimal, accountID int64, accountToID *int64) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
