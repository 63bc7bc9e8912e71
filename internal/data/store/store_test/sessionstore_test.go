package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/cwsplatform/ecom-assist/internal/config"
	"github.com/cwsplatform/ecom-assist/internal/data/redisStore"
	"github.com/cwsplatform/ecom-assist/internal/data/store"
	"github.com/cwsplatform/ecom-assist/internal/domain/chatModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newSessionStore(t *testing.T) (*store.RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestSessionStore(redisStore.NewTestStore(client)), mr
}

func TestRedisSessionStore_Transcript(t *testing.T) {
	sessions, mr := newSessionStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	t.Run("Append and Read Roundtrip", func(t *testing.T) {
		err := sessions.AppendTurn(ctx, "s1", chatModel.Turn{Role: chatModel.RoleUser, Text: "how do refunds work"})
		if err != nil {
			t.Fatalf("AppendTurn failed: %v", err)
		}
		err = sessions.AppendTurn(ctx, "s1", chatModel.Turn{Role: chatModel.RoleAssistant, Text: "refunds are issued from the order page"})
		if err != nil {
			t.Fatalf("AppendTurn failed: %v", err)
		}

		turns, err := sessions.RecentTurns(ctx, "s1", config.HistoryTurns)
		if err != nil {
			t.Fatalf("RecentTurns failed: %v", err)
		}
		if len(turns) != 2 {
			t.Fatalf("got %d turns, want 2", len(turns))
		}
		if turns[0].Role != chatModel.RoleUser || turns[1].Role != chatModel.RoleAssistant {
			t.Errorf("turns came back out of order: %+v", turns)
		}
	})

	t.Run("Unknown Session Is Empty", func(t *testing.T) {
		turns, err := sessions.RecentTurns(ctx, "ghost", config.HistoryTurns)
		if err != nil {
			t.Fatalf("RecentTurns failed: %v", err)
		}
		if len(turns) != 0 {
			t.Errorf("got %d turns for an unknown session, want 0", len(turns))
		}
	})

	t.Run("Sessions Are Isolated", func(t *testing.T) {
		sessions.AppendTurn(ctx, "other", chatModel.Turn{Role: chatModel.RoleUser, Text: "unrelated"})

		turns, _ := sessions.RecentTurns(ctx, "s1", config.HistoryTurns)
		for _, turn := range turns {
			if turn.Text == "unrelated" {
				t.Error("turn from another session leaked into s1")
			}
		}
	})

	t.Run("Session TTL Is Set", func(t *testing.T) {
		if mr.TTL("session:s1") == 0 {
			t.Error("transcript key has no TTL")
		}
	})
}

func TestRedisSessionStore_BoundsTranscript(t *testing.T) {
	sessions, _ := newSessionStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "bound-trace")

	for i := 0; i < config.SessionMaxTurns+10; i++ {
		err := sessions.AppendTurn(ctx, "long", chatModel.Turn{Role: chatModel.RoleUser, Text: fmt.Sprintf("turn %d", i)})
		if err != nil {
			t.Fatalf("AppendTurn failed: %v", err)
		}
	}

	// Asking beyond the bound returns at most the bound, oldest dropped
	turns, err := sessions.RecentTurns(ctx, "long", config.SessionMaxTurns*2)
	if err != nil {
		t.Fatalf("RecentTurns failed: %v", err)
	}
	if len(turns) != config.SessionMaxTurns {
		t.Fatalf("got %d turns, want the %d bound", len(turns), config.SessionMaxTurns)
	}
	if turns[len(turns)-1].Text != fmt.Sprintf("turn %d", config.SessionMaxTurns+9) {
		t.Errorf("newest turn missing, got %q", turns[len(turns)-1].Text)
	}
}

func TestRedisSessionStore_RecentTurnsLimit(t *testing.T) {
	sessions, _ := newSessionStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "limit-trace")

	for i := 0; i < 10; i++ {
		sessions.AppendTurn(ctx, "s", chatModel.Turn{Role: chatModel.RoleUser, Text: fmt.Sprintf("turn %d", i)})
	}

	turns, err := sessions.RecentTurns(ctx, "s", config.HistoryTurns)
	if err != nil {
		t.Fatalf("RecentTurns failed: %v", err)
	}
	if len(turns) != config.HistoryTurns {
		t.Fatalf("got %d turns, want %d", len(turns), config.HistoryTurns)
	}
	if turns[0].Text != "turn 4" {
		t.Errorf("window starts at %q, want turn 4", turns[0].Text)
	}
}
