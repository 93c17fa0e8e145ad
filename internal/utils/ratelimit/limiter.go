// Package ratelimit provides per-client token bucket rate limiting for the
// account endpoints, which are the brute-force surface of the service.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a token bucket for one client identity. Tokens refill at a
// fixed rate up to capacity and each allowed request consumes one.
type Limiter struct {
	tokens   float64
	lastTime time.Time
	rate     float64
	capacity float64
	now      func() time.Time
	mu       sync.Mutex
}

// Rate controls how many requests per second are allowed
type Rate struct {
	// RequestsPerSecond defines how many tokens are added per second
	RequestsPerSecond float64

	// Burst defines the maximum size of the token bucket
	Burst int
}

// NewLimiter creates a new rate limiter with the specified rate and burst capacity.
func NewLimiter(rate float64, burst int) *Limiter {
	return newLimiterWithClock(rate, burst, time.Now)
}

func newLimiterWithClock(rate float64, burst int, now func() time.Time) *Limiter {
	return &Limiter{
		tokens:   float64(burst),
		lastTime: now(),
		rate:     rate,
		capacity: float64(burst),
		now:      now,
	}
}

// Allow reports whether a request may proceed, consuming a token if so.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.refill(now)

	if l.tokens < 1 {
		return false
	}

	l.tokens--
	return true
}

// RetryAfter returns how long until the next token is available.
func (l *Limiter) RetryAfter() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill(l.now())
	if l.tokens >= 1 || l.rate <= 0 {
		return 0
	}
	return time.Duration((1 - l.tokens) / l.rate * float64(time.Second))
}

// IdleSince reports whether the limiter has been untouched since before cutoff.
func (l *Limiter) IdleSince(cutoff time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastTime.Before(cutoff)
}

// ResetTokens refills the bucket to capacity.
func (l *Limiter) ResetTokens() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens = l.capacity
	l.lastTime = l.now()
}

// refill must be called with mu held.
func (l *Limiter) refill(now time.Time) {
	elapsed := now.Sub(l.lastTime).Seconds()
	l.lastTime = now
	l.tokens += elapsed * l.rate
	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}
}
