package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
)

const (
	msgTooManyRequests = "слишком много запросов, попробуйте позже"

	// DefaultIdleTimeout через сколько простоя лимитер клиента удаляется
	DefaultIdleTimeout = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP.
// X-Forwarded-For учитывается только от доверенных прокси.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter

	rps         rate.Limit
	burst       int
	idleTimeout time.Duration
	trusted     []*net.IPNet
	now         func() time.Time
}

// NewRateLimiter создает ограничитель. burst <= 0 заменяется на 5, idleTimeout <= 0 на DefaultIdleTimeout.
// trustedProxies - IP или CIDR прокси, которым разрешено передавать X-Forwarded-For.
func NewRateLimiter(rps float64, burst int, idleTimeout time.Duration, trustedProxies []string) (*RateLimiter, error) {
	if burst <= 0 {
		burst = 5
	}
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}

	trusted := make([]*net.IPNet, 0, len(trustedProxies))
	for _, p := range trustedProxies {
		network, err := parseProxy(p)
		if err != nil {
			return nil, err
		}
		trusted = append(trusted, network)
	}

	return &RateLimiter{
		clients:     make(map[string]*clientLimiter),
		rps:         rate.Limit(rps),
		burst:       burst,
		idleTimeout: idleTimeout,
		trusted:     trusted,
		now:         time.Now,
	}, nil
}

// Middleware отвечает 429, если лимит клиента исчерпан
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.limiter(l.clientIP(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			handlers.RespondTooManyRequests(w, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// EvictIdle периодически удаляет лимитеры клиентов, простаивающих дольше idleTimeout.
// Блокируется до закрытия stop.
func (l *RateLimiter) EvictIdle(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictIdle()
		case <-stop:
			return
		}
	}
}

func (l *RateLimiter) evictIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.idleTimeout)
	for key, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, key)
		}
	}
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = l.now()
	return c.limiter
}

// clientIP адрес клиента: адрес соединения, а за доверенным прокси -
// крайний правый адрес X-Forwarded-For, не принадлежащий доверенным прокси
func (l *RateLimiter) clientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}

	if !l.isTrusted(peer) {
		return peer
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if net.ParseIP(hop) == nil {
			return peer
		}
		if !l.isTrusted(hop) {
			return hop
		}
	}
	return peer
}

func (l *RateLimiter) isTrusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, network := range l.trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func parseProxy(p string) (*net.IPNet, error) {
	p = strings.TrimSpace(p)
	if strings.Contains(p, "/") {
		_, network, err := net.ParseCIDR(p)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", p, err)
		}
		return network, nil
	}

	ip := net.ParseIP(p)
	if ip == nil {
		return nil, fmt.Errorf("invalid trusted proxy %q", p)
	}
	bits := 128
	if ip4 := ip.To4(); ip4 != nil {
		ip, bits = ip4, 32
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
}
