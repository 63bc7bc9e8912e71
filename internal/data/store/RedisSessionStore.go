package store

import (
	"context"
	"encoding/json"

	"github.com/cwsplatform/ecom-assist/internal/config"
	"github.com/cwsplatform/ecom-assist/internal/data/redisStore"
	"github.com/cwsplatform/ecom-assist/internal/domain/chatModel"
	"github.com/cwsplatform/ecom-assist/pkg/logger_i"
)

const sessionKeyPrefix = "session:"

type RedisSessionStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisSessionStore(ctx context.Context) *RedisSessionStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisSessionStore)
	if inner == nil {
		return nil
	}
	return &RedisSessionStore{
		store:  inner,
		logger: logger_i.NewLogger("SessionStore"),
	}
}

// AppendTurn pushes the turn and trims the transcript to its bound. Transcripts
// expire with the session TTL instead of accumulating forever.
func (s *RedisSessionStore) AppendTurn(ctx context.Context, sessionID string, turn chatModel.Turn) error {
	log := s.logger.WithTrace(ctx).With("session", sessionID)

	data, err := json.Marshal(turn)
	if err != nil {
		return err
	}

	key := sessionKeyPrefix + sessionID
	if err := s.store.ListPush(ctx, key, data); err != nil {
		log.Error("error appending turn", "error", err)
		return err
	}
	if err := s.store.ListTrimTail(ctx, key, config.SessionMaxTurns); err != nil {
		log.Error("error trimming transcript", "error", err)
	}
	if err := s.store.Expire(ctx, key, config.RedisSessionStoreTTL); err != nil {
		log.Error("error refreshing session ttl", "error", err)
	}
	return nil
}

func (s *RedisSessionStore) RecentTurns(ctx context.Context, sessionID string, limit int) ([]chatModel.Turn, error) {
	log := s.logger.WithTrace(ctx).With("session", sessionID)

	raw, err := s.store.ListTail(ctx, sessionKeyPrefix+sessionID, int64(limit))
	if s.store.IsNil(err) {
		return nil, nil
	} else if err != nil {
		log.Error("error reading transcript", "error", err)
		return nil, err
	}

	turns := make([]chatModel.Turn, 0, len(raw))
	for _, entry := range raw {
		var t chatModel.Turn
		if err := json.Unmarshal([]byte(entry), &t); err != nil {
			log.Error("skipping unreadable turn", "error", err)
			continue
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func TestSessionStore(store *redisStore.Store) *RedisSessionStore {
	return &RedisSessionStore{
		store:  store,
		logger: logger_i.NewLogger("test session store"),
	}
}
