package server

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const minIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps a token bucket per client IP.
//
// Clients idle for longer than it takes their bucket to refill are forgotten, so the
// table only holds recently active IPs.
type IPRateLimiter struct {
	ips       map[string]*visitor
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewIPRateLimiter creates a limiter allowing r requests per second with the given burst per IP.
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:     make(map[string]*visitor),
		rate:    r,
		burst:   burst,
		idleTTL: idleTTL(r, burst),
		now:     time.Now,
	}
}

// idleTTL is how long a bucket must sit unused before it is full again.
func idleTTL(r rate.Limit, burst int) time.Duration {
	if r <= 0 || r == rate.Inf {
		return minIdleTTL
	}
	refill := time.Duration(float64(burst) / float64(r) * float64(time.Second))
	return max(minIdleTTL, refill)
}

// Limit returns the burst size.
func (i *IPRateLimiter) Limit() int {
	return i.burst
}

// Len reports how many client IPs are tracked.
func (i *IPRateLimiter) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.ips)
}

// GetLimiter returns the limiter for ip, creating it on first use.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if now.Sub(i.lastSweep) >= i.idleTTL {
		i.sweep(now)
	}

	v, ok := i.ips[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(i.rate, i.burst)}
		i.ips[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep drops idle clients. Callers hold mu.
func (i *IPRateLimiter) sweep(now time.Time) {
	for ip, v := range i.ips {
		if now.Sub(v.lastSeen) >= i.idleTTL {
			delete(i.ips, ip)
		}
	}
	i.lastSweep = now
}

func remaining(l *rate.Limiter) int {
	return max(0, int(math.Floor(l.Tokens())))
}
