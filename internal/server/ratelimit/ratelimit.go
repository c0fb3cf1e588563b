// Package ratelimit provides per-client, per-endpoint request throttling backed by
// golang.org/x/time/rate token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	burst    int
	lastSeen time.Time
}

// Limiter manages rate limiting for multiple clients.
type Limiter struct {
	config        *Config
	mu            sync.Mutex
	clients       map[string]*clientLimiter // clientID:path:method -> limiter
	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
	now           func() time.Time
}

// NewLimiter creates a new rate limiter. A nil config uses DefaultConfig.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = time.Hour
	}

	l := &Limiter{
		config:  config,
		clients: make(map[string]*clientLimiter),
		now:     time.Now,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanup()
	}

	return l
}

// Allow reports whether a request from clientID to endpoint may proceed and consumes a
// token when it does.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	cfg := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if cfg == nil {
		cfg = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if cfg.Limit <= 0 || cfg.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	cl := l.getClient(clientID+":"+endpoint+":"+method, cfg, now)

	info := Info{Limit: cfg.Limit}
	res := cl.limiter.ReserveN(now, 1)
	if delay := res.DelayFrom(now); !res.OK() || delay > 0 {
		res.CancelAt(now)
		info.RetryAfter = delay
	} else {
		info.Allowed = true
	}

	tokens := cl.limiter.TokensAt(now)
	if tokens > 0 {
		info.Remaining = int(tokens)
	}
	missing := float64(cl.burst) - tokens
	info.ResetTime = now.Add(time.Duration(missing / float64(cl.limiter.Limit()) * float64(time.Second)))

	return info.Allowed, info
}

func (l *Limiter) getClient(key string, cfg *EndpointConfig, now time.Time) *clientLimiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[key]
	if !ok {
		burst := cfg.Burst
		if burst <= 0 {
			burst = cfg.Limit
		}
		every := cfg.Window / time.Duration(cfg.Limit)
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Every(every), burst), burst: burst}
		l.clients[key] = cl
	}
	cl.lastSeen = now
	return cl
}

// Len returns the number of tracked client limiters.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.evictIdle()
		case <-l.cleanupStop:
			return
		}
	}
}

// evictIdle drops limiters that have not been used within IdleTTL.
func (l *Limiter) evictIdle() {
	cutoff := l.now().Add(-l.config.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, cl := range l.clients {
		if cl.lastSeen.Before(cutoff) {
			delete(l.clients, key)
		}
	}
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupTicker != nil {
			l.cleanupTicker.Stop()
		}
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
