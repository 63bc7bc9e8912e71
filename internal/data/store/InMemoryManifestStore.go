package store

import (
	"context"
	"sort"
	"sync"
)

type InMemoryManifestStore struct {
	lock  *sync.RWMutex
	names map[string]struct{}
}

func InitInMemoryManifestStore() *InMemoryManifestStore {
	return &InMemoryManifestStore{
		lock:  new(sync.RWMutex),
		names: make(map[string]struct{}),
	}
}

func (s *InMemoryManifestStore) Add(ctx context.Context, filename string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.names[filename] = struct{}{}
	return nil
}

func (s *InMemoryManifestStore) Remove(ctx context.Context, filename string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.names, filename)
	return nil
}

func (s *InMemoryManifestStore) List(ctx context.Context) ([]string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	out := make([]string, 0, len(s.names))
	for name := range s.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
