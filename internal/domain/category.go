package domain

import "time"

// CategoryType is the polarity of a category: income or expense.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category labels income and expense transactions. Categories with a zero
// UserID are shared defaults visible to every user.
type Category struct {
	ID         int64
	UserID     int64
	Name       string
	Type       CategoryType
	Icon       string
	Background string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Matches reports whether the category polarity fits the transaction type.
// Transfers never carry a category.
func (c *Category) Matches(t TransactionType) bool {
	switch t {
	case TransactionTypeIncome:
		return c.Type == CategoryTypeIncome
	case TransactionTypeExpense:
		return c.Type == CategoryTypeExpense
	default:
		return false
	}
}
