package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultCategory is used when no category specific rate is registered.
const DefaultCategory = "default"

// Store manages rate limiters for multiple clients and categories.
type Store struct {
	limiters map[string]*Limiter
	rates    map[string]Rate
	mu       sync.RWMutex

	idleExpiry time.Duration
	now        func() time.Time
}

// NewStore creates a limiter store with the given default rate. Limiters
// untouched for idleExpiry are evicted by Cleanup.
func NewStore(defaultRate Rate, idleExpiry time.Duration) *Store {
	return &Store{
		limiters:   make(map[string]*Limiter),
		rates:      map[string]Rate{DefaultCategory: defaultRate},
		idleExpiry: idleExpiry,
		now:        time.Now,
	}
}

// Run evicts idle limiters every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Cleanup(); n > 0 {
				log.Debug().Int("evicted", n).Msg("Evicted idle rate limiters")
			}
		}
	}
}

// GetLimiter returns the limiter for clientID within category, creating it on first use.
func (s *Store) GetLimiter(clientID string, category string) *Limiter {
	key := category + "|" + clientID

	s.mu.RLock()
	limiter, exists := s.limiters[key]
	s.mu.RUnlock()
	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have created it while we waited for the lock
	if limiter, exists = s.limiters[key]; exists {
		return limiter
	}

	rate, ok := s.rates[category]
	if !ok {
		rate = s.rates[DefaultCategory]
	}

	limiter = newLimiterWithClock(rate.RequestsPerSecond, rate.Burst, s.now)
	s.limiters[key] = limiter
	return limiter
}

// SetRate sets a rate limit for a specific category.
func (s *Store) SetRate(category string, rate Rate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[category] = rate
}

// Len returns the number of tracked limiters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.limiters)
}

// Cleanup removes limiters idle for longer than the store's idle expiry and
// returns how many were removed.
func (s *Store) Cleanup() int {
	cutoff := s.now().Add(-s.idleExpiry)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, limiter := range s.limiters {
		if limiter.IdleSince(cutoff) {
			delete(s.limiters, key)
			removed++
		}
	}
	return removed
}
