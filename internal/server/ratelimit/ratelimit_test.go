package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFrozenLimiter returns a limiter whose clock only moves when the test advances it.
func newFrozenLimiter(cfg *Config) (*Limiter, *time.Time) {
	l := NewLimiter(cfg)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_Allow(t *testing.T) {
	l, _ := newFrozenLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/test", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, float64(6*time.Second), float64(info.RetryAfter), float64(time.Millisecond), "one token every 6s")
}

func TestLimiter_Refill(t *testing.T) {
	l, now := newFrozenLimiter(&Config{Enabled: true, DefaultLimit: 2, DefaultWindow: time.Second})
	defer l.Stop()

	l.Allow("c", "/test", "GET")
	l.Allow("c", "/test", "GET")
	allowed, _ := l.Allow("c", "/test", "GET")
	require.False(t, allowed)

	*now = now.Add(500 * time.Millisecond)
	allowed, _ = l.Allow("c", "/test", "GET")
	assert.True(t, allowed)
}

func TestLimiter_Lists(t *testing.T) {
	cfg := &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.2": true},
	}
	l, _ := newFrozenLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := l.Allow("10.0.0.1", "/score", "POST")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}

	allowed, _ := l.Allow("10.0.0.2", "/health", "GET")
	assert.False(t, allowed, "blacklist applies before route matching")
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("127.0.0.1", "/score", "POST")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
	assert.Zero(t, l.Len())
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CleanupInterval = 0
	l, _ := newFrozenLimiter(cfg)
	defer l.Stop()

	allowed, info := l.Allow("c", "/taxonomy/reload", "POST")
	require.True(t, allowed)
	assert.Equal(t, 6, info.Limit)

	allowed, _ = l.Allow("c", "/taxonomy/reload", "POST")
	assert.False(t, allowed, "reload burst is 1")

	allowed, info = l.Allow("c", "/score", "POST")
	assert.True(t, allowed, "limits are tracked per endpoint")
	assert.Equal(t, 300, info.Limit)

	allowed, info = l.Allow("c", "/health", "GET")
	assert.True(t, allowed)
	assert.Zero(t, info.Limit, "health is unlimited")
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/score", Method: "POST", Limit: 1},
		{Path: "/admin/", Method: "POST", Limit: 2},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{name: "exact", path: "/score", method: "POST", wantLimit: 1},
		{name: "prefix", path: "/admin/reload", method: "POST", wantLimit: 2},
		{name: "method mismatch", path: "/score", method: "GET", wantNil: true},
		{name: "no prefix without slash", path: "/score/batch", method: "POST", wantNil: true},
		{name: "health", path: "/health", method: "GET", wantLimit: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newFrozenLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Hour})
	defer l.Stop()

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if ok, _ := l.Allow("shared", "/score", "POST"); ok {
					allowed.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), allowed.Load())
}

func TestLimiter_EvictIdle(t *testing.T) {
	l, now := newFrozenLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute, IdleTTL: time.Minute})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("client-%d", i), "/score", "POST")
	}
	require.Equal(t, 3, l.Len())

	*now = now.Add(30 * time.Second)
	l.Allow("client-0", "/score", "POST")

	*now = now.Add(45 * time.Second)
	l.evictIdle()
	assert.Equal(t, 1, l.Len(), "only the recently used client survives")
}

func TestLoadConfig(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "false")
		assert.False(t, LoadConfig().Enabled)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "")
		t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
		t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
		t.Setenv("RATE_LIMIT_WHITELIST", " 10.0.0.1 , ,10.0.0.2")
		t.Setenv("RATE_LIMIT_BLACKLIST", "")
		t.Setenv("RATE_LIMIT_IDLE_TTL", "10m")

		cfg := LoadConfig()
		assert.True(t, cfg.Enabled)
		assert.Equal(t, 42, cfg.DefaultLimit)
		assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
		assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
		assert.Empty(t, cfg.Blacklist)
		assert.Equal(t, 10*time.Minute, cfg.IdleTTL)
		assert.NotEmpty(t, cfg.EndpointConfigs)
	})
}
