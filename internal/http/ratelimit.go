package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robinjoseph08/golib/logger"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTimeout = 3 * time.Minute
	limiterPruneEvery  = time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*client
	rate       rate.Limit
	burst      int
	lastPruned time.Time
}

func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		clients:    make(map[string]*client),
		rate:       r,
		burst:      burst,
		lastPruned: time.Now(),
	}
}

// Allow consumes a token for ip.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastPruned) > limiterPruneEvery {
		for key, cl := range l.clients {
			if now.Sub(cl.lastSeen) > limiterIdleTimeout {
				delete(l.clients, key)
			}
		}
		l.lastPruned = now
	}

	cl, ok := l.clients[ip]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter.Allow()
}

// FormRateLimit throttles form submissions per client IP. Safe methods pass through.
func FormRateLimit(l *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if !l.Allow(c.ClientIP()) {
			logger.FromContext(c.Request.Context()).Warn("form rate limit exceeded", logger.Data{"ip": c.ClientIP()})
			c.Header("Retry-After", "1")
			_ = c.Error(&HTTPError{Code: http.StatusTooManyRequests, Message: "Too Many Requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
