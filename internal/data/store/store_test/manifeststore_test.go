package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/cwsplatform/ecom-assist/internal/config"
	"github.com/cwsplatform/ecom-assist/internal/data/redisStore"
	"github.com/cwsplatform/ecom-assist/internal/data/store"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newManifestStore(t *testing.T) *store.RedisManifestStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestManifestStore(redisStore.NewTestStore(client))
}

func TestRedisManifestStore_Lifecycle(t *testing.T) {
	manifest := newManifestStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	t.Run("Add and List", func(t *testing.T) {
		if err := manifest.Add(ctx, "manual.pdf"); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if err := manifest.Add(ctx, "faq.md"); err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		names, err := manifest.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(names) != 2 || names[0] != "faq.md" || names[1] != "manual.pdf" {
			t.Errorf("List got %v, want sorted [faq.md manual.pdf]", names)
		}
	})

	t.Run("Re-Add Is Idempotent", func(t *testing.T) {
		if err := manifest.Add(ctx, "manual.pdf"); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		names, _ := manifest.List(ctx)
		if len(names) != 2 {
			t.Errorf("got %d entries after duplicate add, want 2", len(names))
		}
	})

	t.Run("Remove", func(t *testing.T) {
		if err := manifest.Remove(ctx, "manual.pdf"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		names, _ := manifest.List(ctx)
		if len(names) != 1 || names[0] != "faq.md" {
			t.Errorf("List got %v, want [faq.md]", names)
		}
	})

	t.Run("Remove Unknown Is A No-Op", func(t *testing.T) {
		if err := manifest.Remove(ctx, "ghost.pdf"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
	})
}

func TestRedisManifestStore_ConcurrentAdds(t *testing.T) {
	manifest := newManifestStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "race-trace")

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = manifest.Add(ctx, "shared.pdf")
		}()
	}
	wg.Wait()

	names, err := manifest.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 1 {
		t.Errorf("got %d entries after concurrent adds of one filename, want 1", len(names))
	}
}
