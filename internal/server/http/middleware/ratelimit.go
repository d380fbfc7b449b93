package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/polkiloo/flowershop/internal/server/http/dto"
)

// maxTrackedClients bounds the number of per-IP buckets kept in memory.
const maxTrackedClients = 10000

// RateLimiter throttles requests per client IP with a token bucket. The least
// recently seen clients are forgotten once maxTrackedClients is exceeded.
type RateLimiter struct {
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

// NewRateLimiter allows perSecond requests per client with the given burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return newRateLimiter(perSecond, burst, maxTrackedClients)
}

func newRateLimiter(perSecond float64, burst, capacity int) *RateLimiter {
	limiters, err := lru.New[string, *rate.Limiter](capacity)
	if err != nil {
		panic(err)
	}
	return &RateLimiter{limiters: limiters, limit: rate.Limit(perSecond), burst: burst}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	if l, ok := rl.limiters.Get(key); ok {
		return l
	}
	l := rate.NewLimiter(rl.limit, rl.burst)
	if prev, ok, _ := rl.limiters.PeekOrAdd(key, l); ok {
		return prev
	}
	return l
}

// Middleware rejects requests over the limit with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Fail("Error. Too many requests."))
			return
		}
		c.Next()
	}
}
