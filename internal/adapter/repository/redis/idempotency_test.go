package redis

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyFirstRequestClaimsKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, _, err := store.CheckAndSet(ctx, "req-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if exists {
		t.Fatalf("expected first request to claim the key")
	}
}

func TestIdempotencyReplayReturnsStoredResponse(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "req-1", nil, time.Minute); err != nil {
		t.Fatalf("check failed: %v", err)
	}

	if err := store.Update(ctx, "req-1", []byte(`{"id":1}`), time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	exists, stored, err := store.CheckAndSet(ctx, "req-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !exists {
		t.Fatalf("expected replay to find the key")
	}
	if string(stored) != `{"id":1}` {
		t.Fatalf("stored response = %s", stored)
	}
}

func TestIdempotencySetWithResponse(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, _, err := store.CheckAndSet(ctx, "req-2", []byte("done"), time.Minute)
	if err != nil || exists {
		t.Fatalf("expected fresh key, got exists=%v err=%v", exists, err)
	}

	exists, stored, err := store.CheckAndSet(ctx, "req-2", nil, time.Minute)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !exists || string(stored) != "done" {
		t.Fatalf("expected stored response, got exists=%v stored=%s", exists, stored)
	}
}
