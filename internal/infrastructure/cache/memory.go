package cache

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultIdleTTL is how long an unused limiter is kept before it is swept
const DefaultIdleTTL = 10 * time.Minute

// limiterItem is one client's token bucket with its last access time
type limiterItem struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LimiterStore is a thread-safe in-memory map of per-client rate limiters.
// Entries idle for longer than the TTL are dropped on the next sweep.
type LimiterStore struct {
	data      map[string]*limiterItem
	mutex     sync.Mutex
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewLimiterStore creates a store handing out limiters with the given rate and burst
func NewLimiterStore(limit rate.Limit, burst int, idleTTL time.Duration) *LimiterStore {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &LimiterStore{
		data:      make(map[string]*limiterItem),
		limit:     limit,
		burst:     burst,
		idleTTL:   idleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Get returns the limiter for key, creating it on first use
func (s *LimiterStore) Get(key string) *rate.Limiter {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.idleTTL {
		s.sweepLocked(now)
	}

	item, exists := s.data[key]
	if !exists {
		item = &limiterItem{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.data[key] = item
	}
	item.lastSeen = now
	return item.limiter
}

// Sweep removes limiters idle for longer than the TTL and returns how many were removed
func (s *LimiterStore) Sweep() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.sweepLocked(s.now())
}

func (s *LimiterStore) sweepLocked(now time.Time) int {
	removed := 0
	for key, item := range s.data {
		if now.Sub(item.lastSeen) > s.idleTTL {
			delete(s.data, key)
			removed++
		}
	}
	s.lastSweep = now
	return removed
}

// Size returns the current number of tracked clients
func (s *LimiterStore) Size() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.data)
}
