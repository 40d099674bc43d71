package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// CreateTransactionRequest represents a request to create a transaction.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	AccountID   int64           `json:"account_id"`
	AccountToID *int64          `json:"account_to_id,omitempty"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	Date        time.Time       `json:"date"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		Amount:      r.Amount,
		Type:        domain.TransactionType(r.Type),
		AccountID:   r.AccountID,
		AccountToID: r.AccountToID,
		CategoryID:  r.CategoryID,
		Date:        r.Date,
		Title:       r.Title,
		Description: r.Description,
	}
}

// UpdateTransactionRequest represents a partial transaction update. Absent
// fields keep their stored values.
type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *string          `json:"type,omitempty"`
	AccountID   *int64           `json:"account_id,omitempty"`
	AccountToID *int64           `json:"account_to_id,omitempty"`
	CategoryID  *int64           `json:"category_id,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTransactionRequest) ToUseCaseInput() usecase.UpdateTransactionInput {
	input := usecase.UpdateTransactionInput{
		Amount:      r.Amount,
		AccountID:   r.AccountID,
		AccountToID: r.AccountToID,
		CategoryID:  r.CategoryID,
		Date:        r.Date,
		Title:       r.Title,
		Description: r.Description,
	}

	if r.Type != nil {
		txnType := domain.TransactionType(*r.Type)
		input.Type = &txnType
	}

	return input
}

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	Currency   string `json:"currency"`
	Icon       string `json:"icon,omitempty"`
	Background string `json:"background,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:       r.Name,
		Type:       domain.AccountType(r.Type),
		Currency:   r.Currency,
		Icon:       r.Icon,
		Background: r.Background,
	}
}

// UpdateAccountRequest represents a partial account update.
type UpdateAccountRequest struct {
	Name       *string `json:"name,omitempty"`
	Type       *string `json:"type,omitempty"`
	Icon       *string `json:"icon,omitempty"`
	Background *string `json:"background,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput() usecase.UpdateAccountInput {
	input := usecase.UpdateAccountInput{
		Name:       r.Name,
		Icon:       r.Icon,
		Background: r.Background,
	}

	if r.Type != nil {
		accountType := domain.AccountType(*r.Type)
		input.Type = &accountType
	}

	return input
}

// CreateCategoryRequest represents a request to create a category.
type CreateCategoryRequest struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Icon       string `json:"icon,omitempty"`
	Background string `json:"background,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCategoryRequest) ToUseCaseInput() usecase.CreateCategoryInput {
	return usecase.CreateCategoryInput{
		Name:       r.Name,
		Type:       domain.CategoryType(r.Type),
		Icon:       r.Icon,
		Background: r.Background,
	}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
