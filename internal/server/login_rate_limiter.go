package server

import (
	"sync"
	"time"
)

// loginRateLimiter blocks a client/username pair after repeated failed
// logins. Failures are counted inside a sliding window; hitting the limit
// blocks the key for a fixed period. Entries decay lazily.
type loginRateLimiter struct {
	mu          sync.Mutex
	attempts    map[string]*loginAttempts
	maxFailures int
	window      time.Duration
	blockFor    time.Duration
}

type loginAttempts struct {
	failures     int
	windowStart  time.Time
	blockedUntil time.Time
}

func newLoginRateLimiter(maxFailures int, window, blockFor time.Duration) *loginRateLimiter {
	if maxFailures <= 0 || window <= 0 || blockFor <= 0 {
		return nil
	}
	return &loginRateLimiter{
		attempts:    make(map[string]*loginAttempts),
		maxFailures: maxFailures,
		window:      window,
		blockFor:    blockFor,
	}
}

func (l *loginRateLimiter) Allow(key string, now time.Time) bool {
	if l == nil || key == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.attempts[key]
	if !ok {
		return true
	}
	if !entry.blockedUntil.IsZero() {
		if now.Before(entry.blockedUntil) {
			return false
		}
		delete(l.attempts, key)
		return true
	}
	if now.Sub(entry.windowStart) > l.window {
		delete(l.attempts, key)
	}
	return true
}

func (l *loginRateLimiter) RegisterFailure(key string, now time.Time) {
	if l == nil || key == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.attempts[key]
	if !ok || now.Sub(entry.windowStart) > l.window {
		entry = &loginAttempts{windowStart: now}
		l.attempts[key] = entry
	}
	entry.failures++
	if entry.failures >= l.maxFailures {
		entry.blockedUntil = now.Add(l.blockFor)
		entry.failures = 0
		entry.windowStart = now
	}
}

func (l *loginRateLimiter) Reset(key string) {
	if l == nil || key == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}
