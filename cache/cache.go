// Package cache provides the per-token-spec TTL cache slot. Each slot holds
// at most one value plus the instant it was written, guarded by a mutex held
// only for the copy-in/copy-out critical section, never across generation.
package cache

import (
	"sync"
	"time"
)

// Slot is a single-value TTL cache owned by one token spec and shared by all
// requests hitting that spec's scope. A nil *Slot disables caching: all
// methods are nil-safe and behave as a permanent miss, so callers degrade to
// uncached generation instead of failing.
type Slot struct {
	mu        sync.Mutex
	value     string
	writtenAt time.Time
	valid     bool
}

// NewSlot returns an empty cache slot.
func NewSlot() *Slot {
	return &Slot{}
}

// Get returns the cached value if one was written less than ttl ago as of
// now. A non-positive ttl always misses. If now is earlier than the write
// instant the clock has moved backward; the entry is invalidated rather
// than trusted through a bogus TTL comparison.
func (s *Slot) Get(now time.Time, ttl time.Duration) (string, bool) {
	if s == nil || ttl <= 0 {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.valid {
		return "", false
	}

	elapsed := now.Sub(s.writtenAt)
	if elapsed < 0 {
		// Clock went backward since the last write.
		s.valid = false
		s.value = ""
		return "", false
	}
	if elapsed >= ttl {
		return "", false
	}
	return s.value, true
}

// Put stores value with the given write instant. Concurrent writers may
// race; the last writer's value and timestamp win, which is acceptable
// because cached values are fungible within their TTL window.
func (s *Slot) Put(value string, now time.Time) {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = value
	s.writtenAt = now
	s.valid = true
}

// Invalidate discards any cached value.
func (s *Slot) Invalidate() {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = ""
	s.valid = false
}
