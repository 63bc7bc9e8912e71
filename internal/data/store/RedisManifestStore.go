package store

import (
	"context"
	"sort"

	"github.com/cwsplatform/ecom-assist/internal/config"
	"github.com/cwsplatform/ecom-assist/internal/data/redisStore"
	"github.com/cwsplatform/ecom-assist/pkg/logger_i"
)

const manifestKey = "document_manifest"

// RedisManifestStore keeps the document inventory in a Redis set. The vector
// database has no "list distinct source values" operation, so the manifest is
// the authoritative listing; set ops make concurrent updates safe.
type RedisManifestStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisManifestStore(ctx context.Context) *RedisManifestStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisManifestStore)
	if inner == nil {
		return nil
	}
	return &RedisManifestStore{
		store:  inner,
		logger: logger_i.NewLogger("ManifestStore"),
	}
}

func (s *RedisManifestStore) Add(ctx context.Context, filename string) error {
	log := s.logger.WithTrace(ctx).With("filename", filename)
	err := s.store.SetAdd(ctx, manifestKey, filename)
	if err != nil {
		log.Error("error adding to manifest", "error", err)
	}
	return err
}

func (s *RedisManifestStore) Remove(ctx context.Context, filename string) error {
	log := s.logger.WithTrace(ctx).With("filename", filename)
	err := s.store.SetRemove(ctx, manifestKey, filename)
	if err != nil {
		log.Error("error removing from manifest", "error", err)
	}
	return err
}

func (s *RedisManifestStore) List(ctx context.Context) ([]string, error) {
	names, err := s.store.SetMembers(ctx, manifestKey)
	if s.store.IsNil(err) {
		return nil, nil
	} else if err != nil {
		s.logger.WithTrace(ctx).Error("error listing manifest", "error", err)
		return nil, err
	}
	sort.Strings(names) //SMEMBERS order is unspecified
	return names, nil
}

func TestManifestStore(store *redisStore.Store) *RedisManifestStore {
	return &RedisManifestStore{
		store:  store,
		logger: logger_i.NewLogger("test manifest store"),
	}
}
