package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// Memory is an in-process Cache keeping a per-namespace key index under a
// single RWMutex. Suitable for single-instance deployments and tests.
type Memory struct {
	mu         sync.RWMutex
	ttl        time.Duration
	namespaces map[Namespace]map[string]memoryEntry
}

// NewMemory creates an in-memory cache. A non-positive ttl falls back to
// DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		ttl:        ttl,
		namespaces: make(map[Namespace]map[string]memoryEntry),
	}
}

func (m *Memory) Get(ctx context.Context, ns Namespace, key string) ([]byte, bool, error) {
	m.mu.RLock()
	entry, ok := m.namespaces[ns][key]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		// Drop the dead entry so namespaces with churning keys do not grow
		// between invalidations. Re-check under the write lock: a concurrent
		// Put may have refreshed it.
		m.mu.Lock()
		if cur, ok := m.namespaces[ns][key]; ok && time.Now().After(cur.expiresAt) {
			delete(m.namespaces[ns], key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return entry.payload, true, nil
}

func (m *Memory) Put(ctx context.Context, ns Namespace, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys, ok := m.namespaces[ns]
	if !ok {
		keys = make(map[string]memoryEntry)
		m.namespaces[ns] = keys
	}
	keys[key] = memoryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(m.ttl),
	}
	return nil
}

func (m *Memory) InvalidateNamespace(ctx context.Context, namespaces ...Namespace) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ns := range namespaces {
		delete(m.namespaces, ns)
	}
	return nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
