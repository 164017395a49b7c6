package upstream

import (
	"sync"
	"time"
)

// ── Circuit Breaker ───────────────────────────────────────────────────────────
// Guards the central API connection (Closed → Open → Half-Open). Only
// transport-level failures count: a 4xx/5xx answer proves the API is
// reachable and must not trip the breaker.
//
// States:
//   - Closed:    normal operation, requests pass through
//   - Open:      all requests fail immediately (fast-fail with retry hint)
//   - Half-Open: one probe request allowed through to test recovery

// BreakerState represents the current breaker state.
type BreakerState int

const (
	StateClosed   BreakerState = iota // normal; requests flow
	StateOpen                         // tripped; fast-fail all requests
	StateHalfOpen                     // probing; one request allowed
)

// String returns a human-readable state name (for the health endpoint and logs).
func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerSettings holds tunable parameters.
type BreakerSettings struct {
	FailureThreshold int           // consecutive transport failures to trip open
	SuccessThreshold int           // consecutive successes in half-open to close
	Cooldown         time.Duration // how long to stay open before probing
}

// DefaultBreakerSettings suits a till on flaky shop connectivity: trip after
// three dead calls, probe again after fifteen seconds.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{FailureThreshold: 3, SuccessThreshold: 1, Cooldown: 15 * time.Second}
}

// Breaker implements the pattern with thread-safe state transitions.
type Breaker struct {
	mu          sync.Mutex
	state       BreakerState
	failures    int
	successes   int
	lastFailure time.Time
	settings    BreakerSettings
}

// NewBreaker creates a breaker in Closed state.
func NewBreaker(s BreakerSettings) *Breaker {
	if s.FailureThreshold <= 0 {
		s.FailureThreshold = 3
	}
	if s.SuccessThreshold <= 0 {
		s.SuccessThreshold = 1
	}
	if s.Cooldown <= 0 {
		s.Cooldown = 15 * time.Second
	}
	return &Breaker{state: StateClosed, settings: s}
}

// State returns the current state, applying the open → half-open transition
// when the cooldown has elapsed.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

func (b *Breaker) stateLocked() BreakerState {
	if b.state == StateOpen && time.Since(b.lastFailure) >= b.settings.Cooldown {
		b.state = StateHalfOpen
		b.successes = 0
	}
	return b.state
}

// Allow reports whether a request may proceed. When it may not, retryIn is
// how long until the next probe window opens.
func (b *Breaker) Allow() (ok bool, retryIn time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stateLocked() == StateOpen {
		return false, b.settings.Cooldown - time.Since(b.lastFailure)
	}
	return true, 0
}

// RecordSuccess notes a completed round-trip (any HTTP status).
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		b.successes++
		if b.successes >= b.settings.SuccessThreshold {
			b.state = StateClosed
			b.failures = 0
			b.successes = 0
		}
	}
}

// RecordFailure notes a transport failure.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastFailure = time.Now()
	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.settings.FailureThreshold {
			b.state = StateOpen
			b.successes = 0
		}
	case StateHalfOpen:
		// Probe failed, back to open
		b.state = StateOpen
		b.failures = 0
	}
}
