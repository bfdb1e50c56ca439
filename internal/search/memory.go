package search

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryRecents keeps recent searches in-process with a TTL. Used in local
// development and as the fake in tests.
type MemoryRecents struct {
	cache *gocache.Cache
}

func NewMemoryRecents(ttl time.Duration) *MemoryRecents {
	return &MemoryRecents{cache: gocache.New(ttl, 2*ttl)}
}

func (m *MemoryRecents) Get(_ context.Context, userID string) ([]string, error) {
	v, ok := m.cache.Get(userID)
	if !ok {
		return []string{}, nil
	}
	list := v.([]string)
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}

func (m *MemoryRecents) Add(ctx context.Context, userID, term string) error {
	list, _ := m.Get(ctx, userID)
	m.cache.SetDefault(userID, push(list, term))
	return nil
}

func (m *MemoryRecents) Clear(_ context.Context, userID string) error {
	m.cache.Delete(userID)
	return nil
}
