package ratelimit

import (
	"testing"
	"time"
)

func TestMemoryStore(t *testing.T) {
	t.Run("get on empty store", func(t *testing.T) {
		store := NewMemoryStore()

		count, _, exists := store.Get("missing")
		if exists {
			t.Error("expected key to not exist")
		}
		if count != 0 {
			t.Errorf("expected count 0, got %d", count)
		}
	})

	t.Run("increment creates and counts", func(t *testing.T) {
		store := NewMemoryStore()
		resetTime := time.Now().Add(time.Minute)

		if got := store.Increment("key", resetTime); got != 1 {
			t.Errorf("expected count 1, got %d", got)
		}
		if got := store.Increment("key", resetTime); got != 2 {
			t.Errorf("expected count 2, got %d", got)
		}

		count, _, exists := store.Get("key")
		if !exists {
			t.Error("expected key to exist")
		}
		if count != 2 {
			t.Errorf("expected count 2, got %d", count)
		}
	})

	t.Run("expired entries restart from one", func(t *testing.T) {
		store := NewMemoryStore()

		store.Increment("key", time.Now().Add(-time.Second))

		if got := store.Increment("key", time.Now().Add(time.Minute)); got != 1 {
			t.Errorf("expected count to restart at 1, got %d", got)
		}
	})

	t.Run("reset removes the key", func(t *testing.T) {
		store := NewMemoryStore()

		store.Increment("key", time.Now().Add(time.Minute))
		store.Reset("key")

		if _, _, exists := store.Get("key"); exists {
			t.Error("expected key to be removed")
		}
	})
}
