package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddlewareRejectsOverBurst(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	// 2 requests/minute gives a burst of 1: the second immediate request
	// from the same address is rejected.
	handler := RateLimitMiddleware(2, time.Minute)(ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// A different address has its own bucket.
	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:5555"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIPLimiterSweepsIdleClients(t *testing.T) {
	l := newIPLimiter(10, time.Minute)
	l.getLimiter("10.0.0.1")

	// Age the client and the sweep clock past the idle threshold.
	l.mu.Lock()
	l.clients["10.0.0.1"].lastSeen = time.Now().Add(-l.idle - time.Second)
	l.swept = time.Now().Add(-l.idle - time.Second)
	l.mu.Unlock()

	l.getLimiter("10.0.0.2")

	l.mu.Lock()
	defer l.mu.Unlock()
	_, stale := l.clients["10.0.0.1"]
	assert.False(t, stale, "idle client survived the sweep")
	require.Contains(t, l.clients, "10.0.0.2")
}
