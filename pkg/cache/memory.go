package cache

import (
	"context"
	"sync"
	"time"

	"github.com/JaimeStill/heritage/pkg/lifecycle"
)

type entry struct {
	value   string
	expires time.Time
}

type memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	prefix  string
	now     func() time.Time
}

// NewMemory creates an in-process cache. Expired entries are dropped lazily on read.
func NewMemory(ttl time.Duration) System {
	return newMemory(ttl, "")
}

func newMemory(ttl time.Duration, prefix string) *memory {
	return &memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		prefix:  prefix,
		now:     time.Now,
	}
}

func (m *memory) Start(*lifecycle.Coordinator) error { return nil }

func (m *memory) Get(_ context.Context, key string) (string, bool, error) {
	key = m.prefix + key

	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", false, nil
	}

	if m.now().After(e.expires) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.ttl
	}

	m.mu.Lock()
	m.entries[m.prefix+key] = entry{value: value, expires: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}
