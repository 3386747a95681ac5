package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observed struct {
	method, route string
	status        int
}

type fakeRecorder struct {
	calls []observed
}

func (f *fakeRecorder) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.calls = append(f.calls, observed{method: method, route: route, status: status})
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	recorder := &fakeRecorder{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(recorder))
	r.HandleFunc("/bookings/{bookingId}", okHandler).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/42", nil))

	require.Len(t, recorder.calls, 1)
	assert.Equal(t, observed{method: http.MethodGet, route: "/bookings/{bookingId}", status: http.StatusNoContent}, recorder.calls[0])
}

func TestAdminKey(t *testing.T) {
	h := AdminKey("secret")(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(AdminKeyHeader, "secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	open := AdminKey("")(http.HandlerFunc(okHandler))
	rec = httptest.NewRecorder()
	open.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code, "empty key disables the guard")
}

func TestRateLimiter(t *testing.T) {
	limiter, err := NewRateLimiter(0.001, 2, time.Minute, nil)
	require.NoError(t, err)
	h := limiter.Middleware(http.HandlerFunc(okHandler))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2"), "limits are per client")
}

func TestRateLimiter_ForwardedFor(t *testing.T) {
	limiter, err := NewRateLimiter(0.001, 1, time.Minute, []string{"192.168.0.0/16", "10.0.0.1"})
	require.NoError(t, err)
	h := limiter.Middleware(http.HandlerFunc(okHandler))

	send := func(remote, forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.RemoteAddr = remote + ":5555"
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("UntrustedPeerCannotRotateHeader", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, send("203.0.113.7", "1.1.1.1"))
		assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.7", "2.2.2.2"), "spoofed header must not open a new bucket")
	})

	t.Run("TrustedProxyForwardsClient", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, send("192.168.1.10", "198.51.100.1"))
		assert.Equal(t, http.StatusNoContent, send("192.168.1.11", "198.51.100.2"))
		assert.Equal(t, http.StatusTooManyRequests, send("192.168.1.12", "198.51.100.1"), "same client behind another proxy")
	})

	t.Run("RightmostUntrustedHopWins", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, send("10.0.0.1", "5.5.5.5, 198.51.100.9, 192.168.1.1"))
		assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1", "6.6.6.6, 198.51.100.9"), "client-supplied prefix is ignored")
	})

	t.Run("MalformedHopFallsBackToPeer", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, send("192.168.5.5", "not-an-ip"))
		assert.Equal(t, http.StatusTooManyRequests, send("192.168.5.5", "garbage"))
	})
}

func TestNewRateLimiter_InvalidProxy(t *testing.T) {
	_, err := NewRateLimiter(1, 1, time.Minute, []string{"10.0.0.0/99"})
	assert.Error(t, err)

	_, err = NewRateLimiter(1, 1, time.Minute, []string{"proxy.local"})
	assert.Error(t, err)
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	limiter, err := NewRateLimiter(0.001, 1, 10*time.Minute, nil)
	require.NoError(t, err)

	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.limiter("10.0.0.1")
	now = now.Add(6 * time.Minute)
	limiter.limiter("10.0.0.2")

	now = now.Add(5 * time.Minute)
	limiter.evictIdle()

	limiter.mu.Lock()
	_, idle := limiter.clients["10.0.0.1"]
	_, active := limiter.clients["10.0.0.2"]
	limiter.mu.Unlock()
	assert.False(t, idle, "idle client evicted")
	assert.True(t, active, "recently seen client kept")

	t.Run("EvictIdleStopsOnClose", func(t *testing.T) {
		stop := make(chan struct{})
		done := make(chan struct{})
		go func() {
			limiter.EvictIdle(time.Millisecond, stop)
			close(done)
		}()
		close(stop)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("EvictIdle did not return after stop")
		}
	})
}
