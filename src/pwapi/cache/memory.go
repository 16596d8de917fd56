package cache

import (
	"context"
	"log"
	"sync"
	"time"
)

type entry struct {
	body      []byte
	expiresAt time.Time
}

// Memory is the in-process response cache. Construct one at startup and pass
// it to whatever needs it; there is no package-level instance.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, sig string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.entries[sig]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.now().After(e.expiresAt) {
		// lazy eviction; present-but-expired is a miss
		m.mu.Lock()
		if cur, still := m.entries[sig]; still && m.now().After(cur.expiresAt) {
			delete(m.entries, sig)
		}
		m.mu.Unlock()
		return nil, false
	}
	return e.body, true
}

func (m *Memory) Set(_ context.Context, sig string, body []byte, ttl time.Duration) {
	m.mu.Lock()
	m.entries[sig] = entry{body: body, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
}

func (m *Memory) Delete(_ context.Context, sig string) {
	m.mu.Lock()
	delete(m.entries, sig)
	m.mu.Unlock()
}

// SweepExpired removes every expired entry and returns how many went. Bounds
// growth from write-once-read-never keys that lazy eviction never touches.
func (m *Memory) SweepExpired(_ context.Context) int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for sig, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, sig)
			removed++
		}
	}
	return removed
}

// Len reports the current entry count, expired or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// RunSweeper sweeps on a fixed interval until ctx is cancelled.
func RunSweeper(ctx context.Context, c ResponseCache, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.SweepExpired(ctx); n > 0 {
				log.Printf("cache: swept %d expired entries", n)
			}
		}
	}
}
