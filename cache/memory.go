package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const cleanupInterval = 10 * time.Minute

// Memory keeps entries in process memory. Create one per process.
type Memory struct {
	store  *gocache.Cache
	logger zerolog.Logger
}

// NewMemory returns an in-process cache whose entries expire after defaultTTL.
func NewMemory(defaultTTL time.Duration) *Memory {
	return &Memory{
		store:  gocache.New(defaultTTL, cleanupInterval),
		logger: log.With().Str("component", "memoryCache").Logger(),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	value, ok := m.store.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := value.([]byte)
	return b, ok
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.store.Set(key, value, ttl)
}

func (m *Memory) Invalidate(_ context.Context, keys ...string) {
	for _, key := range keys {
		m.store.Delete(key)
	}
	m.logger.Debug().Strs("keys", keys).Msg("cache keys invalidated")
}
