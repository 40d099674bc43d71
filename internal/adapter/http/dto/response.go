package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	AccountID   int64           `json:"account_id"`
	AccountToID *int64          `json:"account_to_id,omitempty"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	Date        time.Time       `json:"date"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		Amount:      t.Amount,
		Type:        string(t.Type),
		AccountID:   t.AccountID,
		AccountToID: t.AccountToID,
		CategoryID:  t.CategoryID,
		Date:        t.Date,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// PaginatedTransactionsResponse is one page of a transaction listing.
type PaginatedTransactionsResponse struct {
	Data       []*TransactionResponse `json:"data"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// PaginatedTransactionsFromDomain converts a use case page to a response.
func PaginatedTransactionsFromDomain(p *usecase.PaginatedTransactions) *PaginatedTransactionsResponse {
	data := make([]*TransactionResponse, len(p.Data))
	for i, t := range p.Data {
		data[i] = TransactionFromDomain(t)
	}

	return &PaginatedTransactionsResponse{
		Data:       data,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	Type       string          `json:"type"`
	Currency   string          `json:"currency"`
	Icon       string          `json:"icon,omitempty"`
	Background string          `json:"background,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:         a.ID,
		Name:       a.Name,
		Balance:    a.Balance,
		Type:       string(a.Type),
		Currency:   a.Currency,
		Icon:       a.Icon,
		Background: a.Background,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Icon       string    `json:"icon,omitempty"`
	Background string    `json:"background,omitempty"`
	Shared     bool      `json:"shared"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CategoryFromDomain converts a domain category to a response.
func CategoryFromDomain(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:         c.ID,
		Name:       c.Name,
		Type:       string(c.Type),
		Icon:       c.Icon,
		Background: c.Background,
		Shared:     c.UserID == 0,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []*domain.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryFromDomain(c)
	}
	return result
}

// AccountDriftResponse describes one drifted account in a consistency report.
type AccountDriftResponse struct {
	AccountID  int64           `json:"account_id"`
	Balance    decimal.Decimal `json:"balance"`
	LedgerSum  decimal.Decimal `json:"ledger_sum"`
	Difference decimal.Decimal `json:"difference"`
}

// ConsistencyReportResponse represents a ledger consistency check result.
type ConsistencyReportResponse struct {
	Consistent bool                   `json:"consistent"`
	Drift      []AccountDriftResponse `json:"drift,omitempty"`
	CheckedAt  time.Time              `json:"checked_at"`
}

// ConsistencyReportFromDomain converts a use case report to a response.
func ConsistencyReportFromDomain(r *usecase.ConsistencyReport) *ConsistencyReportResponse {
	drift := make([]AccountDriftResponse, len(r.Drift))
	for i, d := range r.Drift {
		drift[i] = AccountDriftResponse{
			AccountID:  d.AccountID,
			Balance:    d.Balance,
			LedgerSum:  d.LedgerSum,
			Difference: d.Difference,
		}
	}

	return &ConsistencyReportResponse{
		Consistent: r.Consistent,
		Drift:      drift,
		CheckedAt:  r.CheckedAt,
	}
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
