package store

import (
	"context"
	"sync"

	"github.com/cwsplatform/ecom-assist/internal/config"
	"github.com/cwsplatform/ecom-assist/internal/domain/chatModel"
)

// InMemorySessionStore is the process-memory fallback when Redis is offline.
// Transcripts are bounded the same way but die with the process.
type InMemorySessionStore struct {
	lock     *sync.RWMutex
	sessions map[string][]chatModel.Turn
}

func InitInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		lock:     new(sync.RWMutex),
		sessions: make(map[string][]chatModel.Turn),
	}
}

func (s *InMemorySessionStore) AppendTurn(ctx context.Context, sessionID string, turn chatModel.Turn) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	transcript := append(s.sessions[sessionID], turn)
	if len(transcript) > config.SessionMaxTurns {
		transcript = transcript[len(transcript)-config.SessionMaxTurns:]
	}
	s.sessions[sessionID] = transcript
	return nil
}

func (s *InMemorySessionStore) RecentTurns(ctx context.Context, sessionID string, limit int) ([]chatModel.Turn, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	transcript := s.sessions[sessionID]
	if len(transcript) > limit {
		transcript = transcript[len(transcript)-limit:]
	}
	out := make([]chatModel.Turn, len(transcript))
	copy(out, transcript)
	return out, nil
}
