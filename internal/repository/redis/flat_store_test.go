package redis

import (
	"context"
	"testing"

	"alcyxob/workout-map/internal/repository"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newStore(t *testing.T) (*miniredis.Miniredis, repository.FlatStore) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewFlatStore(client, "workout-map:")
}

func TestFlatStoreRoundTrip(t *testing.T) {
	mr, store := newStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "workouts"); err != repository.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Set(ctx, "workouts", `[{"id":"1"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.Get(ctx, "workouts")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `[{"id":"1"}]` {
		t.Fatalf("unexpected value %q", got)
	}
	if v, _ := mr.Get("workout-map:workouts"); v != got {
		t.Fatalf("expected prefixed key in redis")
	}
}

func TestFlatStoreRemove(t *testing.T) {
	_, store := newStore(t)
	ctx := context.Background()

	if err := store.Remove(ctx, "workouts"); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
	_ = store.Set(ctx, "workouts", "[]")
	if err := store.Remove(ctx, "workouts"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.Get(ctx, "workouts"); err != repository.ErrNotFound {
		t.Fatalf("expected not found after remove, got %v", err)
	}
}

func TestConnectWithoutAddr(t *testing.T) {
	if Connect(Options{}) != nil {
		t.Fatalf("expected nil client")
	}
	client := Connect(Options{Addr: "localhost:6379"})
	if client == nil {
		t.Fatalf("expected client")
	}
	_ = client.Close()
}
