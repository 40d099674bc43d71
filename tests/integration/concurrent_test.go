package integration

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// Two writers race to spend from the same account. Row locks must serialize
// them so the balance never goes negative and never loses an update.
func TestConcurrentExpenses(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	env := newTestEnv(t, ctx)
	env.db.TruncateAll(ctx)

	token := env.registerUser(t, "racer@example.com")
	accountID := env.createAccount(t, token, "Checking")

	w := env.do(t, http.MethodPost, "/api/v1/transactions", token, map[string]any{
		"amount":     "100.00",
		"type":       "income",
		"account_id": accountID,
		"date":       time.Now().UTC().Format(time.RFC3339),
		"title":      "Seed",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("seed income failed: %d %s", w.Code, w.Body.String())
	}

	const writers = 2

	var wg sync.WaitGroup
	codes := make([]int, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := env.do(t, http.MethodPost, "/api/v1/transactions", token, map[string]any{
				"amount":     "60.00",
				"type":       "expense",
				"account_id": accountID,
				"date":       time.Now().UTC().Format(time.RFC3339),
				"title":      "Race",
			})
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	created := 0
	rejected := 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusUnprocessableEntity:
			rejected++
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}

	if created != 1 || rejected != 1 {
		t.Fatalf("expected exactly one success and one rejection, got %d/%d", created, rejected)
	}

	if got := env.accountBalance(t, token, accountID); !got.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("expected balance 40.00, got %s", got)
	}
}
