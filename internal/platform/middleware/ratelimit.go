package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig returns default rate limiting settings.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
	}
}

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

type limiterPool struct {
	mu      sync.Mutex
	clients map[string]*client
	r       rate.Limit
	burst   int
}

func newLimiterPool(rps float64, burst int) *limiterPool {
	p := &limiterPool{
		clients: make(map[string]*client),
		r:       rate.Limit(rps),
		burst:   burst,
	}
	// drop limiters for clients not seen recently
	go func() {
		for {
			time.Sleep(time.Minute)
			p.mu.Lock()
			for ip, c := range p.clients {
				if time.Since(c.seen) > 3*time.Minute {
					delete(p.clients, ip)
				}
			}
			p.mu.Unlock()
		}
	}()
	return p
}

func (p *limiterPool) get(ip string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.clients[ip]; ok {
		c.seen = time.Now()
		return c.lim
	}
	l := rate.NewLimiter(p.r, p.burst)
	p.clients[ip] = &client{lim: l, seen: time.Now()}
	return l
}

// RateLimit returns a per-client-IP token bucket rate limiter.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.RequestsPerSecond <= 0 {
		cfg = DefaultRateLimitConfig()
	}
	pool := newLimiterPool(cfg.RequestsPerSecond, cfg.BurstSize)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !pool.get(c.RealIP()).Allow() {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
