package domain

import "time"

// Event types
const (
	EventTypeTransactionCreated = "transaction.created"
	EventTypeTransactionUpdated = "transaction.updated"
	EventTypeTransactionDeleted = "transaction.deleted"
)

// Aggregate types
const (
	AggregateTypeTransaction = "transaction"
)

// OutboxEvent is written in the same scope as the ledger mutation it
// describes and published asynchronously.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// TransactionEvent is the payload shared by all transaction events.
type TransactionEvent struct {
	TransactionID int64  `json:"transaction_id"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	AccountID     int64  `json:"account_id"`
	AccountToID   *int64 `json:"account_to_id,omitempty"`
	Date          string `json:"date"`
}
