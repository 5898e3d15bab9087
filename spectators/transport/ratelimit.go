package transport

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

const defaultClients = 4096

// ipLimiter keeps one token bucket per client IP. Least recently seen
// clients are evicted, which resets their bucket.
type ipLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *lru.Cache[string, *rate.Limiter]
}

func newIPLimiter(cfg RateConfig) (*ipLimiter, error) {
	size := cfg.Clients
	if size <= 0 {
		size = defaultClients
	}
	cache, err := lru.New[string, *rate.Limiter](size)
	if err != nil {
		return nil, err
	}

	limit := rate.Limit(cfg.PerSecond)
	if cfg.PerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &ipLimiter{limit: limit, burst: burst, limiters: cache}, nil
}

func (l *ipLimiter) Allow(ip string) bool {
	limiter, ok := l.limiters.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		// a concurrent first request may have stored one already
		if prev, loaded, _ := l.limiters.PeekOrAdd(ip, limiter); loaded {
			limiter = prev
		}
	}
	return limiter.Allow()
}
