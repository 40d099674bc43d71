package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

type fakeTransactionUseCase struct {
	CreateFunc func(ctx context.Context, input usecase.CreateTransactionInput, userID int64) (*domain.Transaction, error)
	GetFunc    func(ctx context.Context, id, userID int64) (*domain.Transaction, error)
	UpdateFunc func(ctx context.Context, id int64, input usecase.UpdateTransactionInput, userID int64) (*domain.Transaction, error)
	DeleteFunc func(ctx context.Context, id, userID int64) error
	ListFunc   func(ctx context.Context, input usecase.ListTransactionsInput, userID int64) (*usecase.PaginatedTransactions, error)
}

func (f *fakeTransactionUseCase) CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput, userID int64) (*domain.Transaction, error) {
	return f.CreateFunc(ctx, input, userID)
}

func (f *fakeTransactionUseCase) GetTransaction(ctx context.Context, id, userID int64) (*domain.Transaction, error) {
	return f.GetFunc(ctx, id, userID)
}

func (f *fakeTransactionUseCase) UpdateTransaction(ctx context.Context, id int64, input usecase.UpdateTransactionInput, userID int64) (*domain.Transaction, error) {
	return f.UpdateFunc(ctx, id, input, userID)
}

func (f *fakeTransactionUseCase) DeleteTransaction(ctx context.Context, id, userID int64) error {
	return f.DeleteFunc(ctx, id, userID)
}

func (f *fakeTransactionUseCase) ListTransactions(ctx context.Context, input usecase.ListTransactionsInput, userID int64) (*usecase.PaginatedTransactions, error) {
	return f.ListFunc(ctx, input, userID)
}

func newTransactionHandler(uc *fakeTransactionUseCase) *TransactionHandler {
	return NewTransactionHandler(uc, testMetrics, zerolog.Nop())
}

func TestTransactionHandler_Create(t *testing.T) {
	uc := &fakeTransactionUseCase{
		CreateFunc: func(_ context.Context, input usecase.CreateTransactionInput, userID int64) (*domain.Transaction, error) {
			if userID != testUserID {
				t.Fatalf("expected user id %d, got %d", testUserID, userID)
			}
			if input.Type != domain.TransactionTypeExpense {
				t.Fatalf("expected expense type, got %s", input.Type)
			}

			return &domain.Transaction{
				ID:        42,
				Amount:    input.Amount,
				Type:      input.Type,
				AccountID: input.AccountID,
				Title:     input.Title,
			}, nil
		},
	}

	body := jsonBody(`{"amount":"30.00","type":"expense","account_id":1,"title":"Groceries"}`)
	req := authedRequest(t, http.MethodPost, "/api/v1/transactions", body)
	rr := httptest.NewRecorder()

	newTransactionHandler(uc).Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp dto.TransactionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.ID != 42 {
		t.Fatalf("expected transaction id 42, got %d", resp.ID)
	}
	if !resp.Amount.Equal(decimal.RequireFromString("30.00")) {
		t.Fatalf("expected amount 30.00, got %s", resp.Amount)
	}
}

func TestTransactionHandler_CreateInvalidBody(t *testing.T) {
	uc := &fakeTransactionUseCase{
		CreateFunc: func(context.Context, usecase.CreateTransactionInput, int64) (*domain.Transaction, error) {
			t.Fatal("use case should not be called")
			return nil, nil
		},
	}

	req := authedRequest(t, http.MethodPost, "/api/v1/transactions", jsonBody(`{not json`))
	rr := httptest.NewRecorder()

	newTransactionHandler(uc).Create(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestTransactionHandler_CreateInsufficientBalance(t *testing.T) {
	uc := &fakeTransactionUseCase{
		CreateFunc: func(context.Context, usecase.CreateTransactionInput, int64) (*domain.Transaction, error) {
			return nil, &domain.InsufficientBalanceError{
				Current:  decimal.RequireFromString("10.00"),
				Required: decimal.RequireFromString("30.00"),
			}
		},
	}

	body := jsonBody(`{"amount":"30.00","type":"expense","account_id":1,"title":"Groceries"}`)
	req := authedRequest(t, http.MethodPost, "/api/v1/transactions", body)
	rr := httptest.NewRecorder()

	newTransactionHandler(uc).Create(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestTransactionHandler_CreateUnauthenticated(t *testing.T) {
	uc := &fakeTransactionUseCase{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", jsonBody(`{}`))
	rr := httptest.NewRecorder()

	newTransactionHandler(uc).Create(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rr.Code)
	}
}

func TestTransactionHandler_GetNotFound(t *testing.T) {
	uc := &fakeTransactionUseCase{
		GetFunc: func(_ context.Context, id, _ int64) (*domain.Transaction, error) {
			if id != 99 {
				t.Fatalf("expected id 99, got %d", id)
			}
			return nil, domain.ErrTransactionNotFound
		},
	}

	req := withURLParam(authedRequest(t, http.MethodGet, "/api/v1/transactions/99", nil), "id", "99")
	rr := httptest.NewRecorder()

	newTransactionHandler(uc).Get(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestTransactionHandler_GetInvalidID(t *testing.T) {
	uc := &fakeTransactionUseCase{}

	req := withURLParam(authedRequest(t, http.MethodGet, "/api/v1/transactions/abc", nil), "id", "abc")
	rr := httptest.NewRecorder()

	newTransactionHandler(uc).Get(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestTransactionHandler_Update(t *testing.T) {
	uc := &fakeTransactionUseCase{
		UpdateFunc: func(_ context.Context, id int64, input usecase.UpdateTransactionInput, _ int64) (*domain.Transaction, error) {
			if id != 42 {
				t.Fatalf("expected id 42, got %d", id)
			}
			if input.Amount == nil || !input.Amount.Equal(decimal.RequireFromString("55.00")) {
				t.Fatalf("expected amount patch 55.00, got %v", input.Amount)
			}
			if input.Title != nil {
				t.Fatalf("expected absent title to stay nil, got %q", *input.Title)
			}

			return &domain.Transaction{ID: id, Amount: *input.Amount, Type: domain.TransactionTypeExpense}, nil
		},
	}

	body := jsonBody(`{"amount":"55.00"}`)
	req := withURLParam(authedRequest(t, http.MethodPatch, "/api/v1/transactions/42", body), "id", "42")
	rr := httptest.NewRecorder()

	newTransactionHandler(uc).Update(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestTransactionHandler_Delete(t *testing.T) {
	deleted := false
	uc := &fakeTransactionUseCase{
		DeleteFunc: func(_ context.Context, id, _ int64) error {
			deleted = true
			if id != 42 {
				t.Fatalf("expected id 42, got %d", id)
			}
			return nil
		},
	}

	req := withURLParam(authedRequest(t, http.MethodDelete, "/api/v1/transactions/42", nil), "id", "42")
	rr := httptest.NewRecorder()

	newTransactionHandler(uc).Delete(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
	if !deleted {
		t.Fatal("expected delete to reach the use case")
	}
}

func TestTransactionHandler_ListBuildsFilter(t *testing.T) {
	var captured usecase.ListTransactionsInput
	uc := &fakeTransactionUseCase{
		ListFunc: func(_ context.Context, input usecase.ListTransactionsInput, _ int64) (*usecase.PaginatedTransactions, error) {
			captured = input
			return &usecase.PaginatedTransactions{
				Data:       []*domain.Transaction{},
				Page:       input.Page,
				Limit:      input.Limit,
				TotalPages: 0,
			}, nil
		},
	}

	target := "/api/v1/transactions?account_id=3&type=expense&min_amount=10.50&page=2&limit=5"
	req := authedRequest(t, http.MethodGet, target, nil)
	rr := httptest.NewRecorder()

	newTransactionHandler(uc).List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	if captured.Page != 2 || captured.Limit != 5 {
		t.Fatalf("expected page=2 limit=5, got page=%d limit=%d", captured.Page, captured.Limit)
	}
	if captured.Filter.AccountID == nil || *captured.Filter.AccountID != 3 {
		t.Fatalf("expected account filter 3, got %v", captured.Filter.AccountID)
	}
	if captured.Filter.Type == nil || *captured.Filter.Type != domain.TransactionTypeExpense {
		t.Fatalf("expected expense type filter, got %v", captured.Filter.Type)
	}
	if captured.Filter.MinAmount == nil || !captured.Filter.MinAmount.Equal(decimal.RequireFromString("10.50")) {
		t.Fatalf("expected min amount 10.50, got %v", captured.Filter.MinAmount)
	}
	if captured.Filter.CategoryID != nil {
		t.Fatalf("expected no category filter, got %v", captured.Filter.CategoryID)
	}
}
