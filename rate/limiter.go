// Package rate keeps one token bucket per client and forgets clients
// that have been quiet for a while.
package rate

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Limiter struct {
	expiry   time.Duration
	burst    int
	limitRPS rate.Limit

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLimiter allows a burst of burst events and a sustained rate of
// one event per interval, per client. A client idle longer than
// expiry is evicted.
func NewLimiter(burst int, interval, expiry time.Duration) *Limiter {
	lm := &Limiter{
		expiry:   expiry,
		burst:    burst,
		limitRPS: rate.Every(interval),
		clients:  make(map[string]*clientLimiter),
	}
	go lm.evict()
	return lm
}

// Check reports whether the client may proceed, consuming one token
// when it may.
func (l *Limiter) Check(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[id]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limitRPS, l.burst)}
		l.clients[id] = cl
	}
	cl.lastAccess = time.Now()
	return cl.limiter.Allow()
}

func (l *Limiter) evict() {
	for range time.Tick(time.Minute) {
		l.mu.Lock()
		for id, cl := range l.clients {
			if time.Since(cl.lastAccess) > l.expiry {
				delete(l.clients, id)
			}
		}
		l.mu.Unlock()
	}
}
