// Package ledger provides the rolling-window dedup set used to avoid
// re-notifying a (subscriber, lead) pair. Entries expire after the window;
// the memory variant also enforces a hard capacity.

package ledger

import (
	"context"
	"sync"
	"time"
)

// Ledger records keys and answers whether they were seen within the window.
type Ledger interface {
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

// Memory is an in-process expiring set. The clock is injectable so expiry
// is testable without real waiting.
type Memory struct {
	mu       sync.Mutex
	window   time.Duration
	capacity int
	entries  map[string]time.Time
	now      func() time.Time
}

const defaultCapacity = 10000

func NewMemory(window time.Duration, capacity int) *Memory {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Memory{
		window:   window,
		capacity: capacity,
		entries:  make(map[string]time.Time),
		now:      time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Seen(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	at, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	if m.now().Sub(at) > m.window {
		delete(m.entries, key)
		return false, nil
	}
	return true, nil
}

func (m *Memory) Mark(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) >= m.capacity {
		m.evict()
	}
	m.entries[key] = m.now()
	return nil
}

// evict drops expired entries; if the set is still full, the oldest entry
// goes too, so Mark never fails.
func (m *Memory) evict() {
	now := m.now()
	for key, at := range m.entries {
		if now.Sub(at) > m.window {
			delete(m.entries, key)
		}
	}

	if len(m.entries) < m.capacity {
		return
	}

	var oldestKey string
	var oldestAt time.Time
	for key, at := range m.entries {
		if oldestKey == "" || at.Before(oldestAt) {
			oldestKey, oldestAt = key, at
		}
	}
	delete(m.entries, oldestKey)
}

// Len reports the current number of tracked entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
