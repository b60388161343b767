package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepThreshold bounds memory growth: once the table holds more than
// this many distinct keys, expired entries are swept on the next miss.
const sweepThreshold = 100

type windowEntry struct {
	count   int
	resetAt time.Time
}

// MemoryStore is a process-local fixed-window counter. Suitable for a
// single-instance deployment only; use RedisStore when running more
// than one replica.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a memory store allowing limit requests per key
// per window.
func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*windowEntry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow consumes one slot for key. A fresh or expired window resets the
// counter to 1 and allows; at the limit the request is denied without
// incrementing.
func (s *MemoryStore) Allow(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]

	if !ok || now.After(entry.resetAt) {
		if len(s.entries) > sweepThreshold {
			s.sweepLocked(now)
		}
		s.entries[key] = &windowEntry{count: 1, resetAt: now.Add(s.window)}
		return true, nil
	}

	if entry.count >= s.limit {
		return false, nil
	}

	entry.count++
	return true, nil
}

// Sweep removes all entries whose window has expired. The click limiter
// runs this every 10 minutes from the job scheduler.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now())
}

func (s *MemoryStore) sweepLocked(now time.Time) int {
	removed := 0
	for key, entry := range s.entries {
		if now.After(entry.resetAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
