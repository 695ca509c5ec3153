// Package ratelimit limits requests per client with token buckets.
package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	tokens   float64
	updated  time.Time
	capacity float64
	rate     float64 // tokens per second
}

func (b *bucket) refill(now time.Time) {
	elapsed := now.Sub(b.updated).Seconds()
	if elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed*b.rate)
	}
	b.updated = now
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int // Zero when the request was not subject to a limit
	Remaining  int
	RetryAfter time.Duration
}

// Limiter tracks one bucket per client and rule. It is safe for concurrent use.
type Limiter struct {
	mu        sync.Mutex
	cfg       *Config
	buckets   map[string]*bucket
	lastPrune time.Time
	now       func() time.Time
}

// New creates a limiter. A nil config uses DefaultConfig.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Limiter{
		cfg:       cfg,
		buckets:   make(map[string]*bucket),
		now:       time.Now,
		lastPrune: time.Now(),
	}
}

// Allow consumes a token for client on the rule matching method and path.
func (l *Limiter) Allow(client, method, path string) Decision {
	if !l.cfg.Enabled || l.cfg.Exempt[client] {
		return Decision{Allowed: true}
	}
	if l.cfg.Blocked[client] {
		return Decision{Allowed: false}
	}

	rule := l.cfg.ruleFor(method, path)
	if rule.Limit <= 0 || rule.Window <= 0 {
		return Decision{Allowed: true}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.pruneLocked(now)

	key := client + "|" + rule.key()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{
			tokens:   float64(rule.capacity()),
			updated:  now,
			capacity: float64(rule.capacity()),
			rate:     float64(rule.Limit) / rule.Window.Seconds(),
		}
		l.buckets[key] = b
	}
	b.refill(now)

	d := Decision{Limit: rule.Limit}
	if b.tokens >= 1 {
		b.tokens--
		d.Allowed = true
	} else {
		d.RetryAfter = time.Duration((1 - b.tokens) / b.rate * float64(time.Second))
	}
	d.Remaining = int(b.tokens)
	return d
}

// pruneLocked drops buckets idle for longer than IdleTTL, at most once per IdleTTL.
func (l *Limiter) pruneLocked(now time.Time) {
	ttl := l.cfg.IdleTTL
	if ttl <= 0 || now.Sub(l.lastPrune) < ttl {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.updated) > ttl {
			delete(l.buckets, key)
		}
	}
	l.lastPrune = now
}

// Len returns the number of tracked buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
