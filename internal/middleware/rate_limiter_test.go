package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func doRequest(e *echo.Echo, handler echo.HandlerFunc, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = handler(c)
	return rec
}

func TestIPRateLimiter_EnforcesBurst(t *testing.T) {
	e := echo.New()
	handler := NewIPRateLimiter(2, 4).Middleware()(okHandler)

	// Initial burst is allowed
	for i := 0; i < 4; i++ {
		rec := doRequest(e, handler, "192.168.1.2:12345")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should be within the burst", i)
	}

	// Next request trips the limiter. SendError writes the response and
	// returns nil, so the outcome is in the recorder.
	rec := doRequest(e, handler, "192.168.1.2:12345")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestIPRateLimiter_IndependentPerIP(t *testing.T) {
	e := echo.New()
	handler := NewIPRateLimiter(5, 5).Middleware()(okHandler)

	ips := []string{"192.168.1.1:1234", "192.168.1.2:1234", "192.168.1.3:1234"}

	for _, ip := range ips {
		for i := 0; i < 5; i++ {
			rec := doRequest(e, handler, ip)
			assert.Equal(t, http.StatusOK, rec.Code, "request %d for IP %s should succeed", i, ip)
		}
	}
}

func TestIPRateLimiter_InstancesDoNotShareConfig(t *testing.T) {
	e := echo.New()
	strict := NewIPRateLimiter(1, 1).Middleware()(okHandler)
	loose := NewIPRateLimiter(100, 10).Middleware()(okHandler)

	// Exhaust the strict limiter for this IP
	assert.Equal(t, http.StatusOK, doRequest(e, strict, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(e, strict, "10.0.0.1:1").Code)

	// The loose limiter keeps its own budget for the same IP
	for i := 0; i < 10; i++ {
		rec := doRequest(e, loose, "10.0.0.1:1")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d on the loose limiter should succeed", i)
	}
}

func TestIPRateLimiter_PruneDropsStaleVisitors(t *testing.T) {
	l := NewIPRateLimiter(5, 10)

	l.mu.Lock()
	l.visitors["old_ip"] = &visitor{lastSeen: time.Now().Add(-5 * time.Minute)}
	l.visitors["new_ip"] = &visitor{lastSeen: time.Now()}
	l.mu.Unlock()

	l.prune()

	l.mu.Lock()
	_, oldExists := l.visitors["old_ip"]
	_, newExists := l.visitors["new_ip"]
	l.mu.Unlock()

	assert.False(t, oldExists, "stale visitor should be removed")
	assert.True(t, newExists, "recent visitor should survive")
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name: "X-Forwarded-For header",
			headers: map[string]string{
				"X-Forwarded-For": "192.168.1.1",
			},
			remoteAddr: "127.0.0.1:12345",
			expected:   "192.168.1.1",
		},
		{
			name: "X-Real-IP header",
			headers: map[string]string{
				"X-Real-IP": "192.168.1.2",
			},
			remoteAddr: "127.0.0.1:12345",
			expected:   "192.168.1.2",
		},
		{
			name: "X-Forwarded-For takes precedence",
			headers: map[string]string{
				"X-Forwarded-For": "192.168.1.1",
				"X-Real-IP":       "192.168.1.2",
			},
			remoteAddr: "127.0.0.1:12345",
			expected:   "192.168.1.1",
		},
		{
			name:       "Falls back to RealIP",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.3:12345",
			expected:   "192.168.1.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			req.RemoteAddr = tt.remoteAddr

			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			assert.Equal(t, tt.expected, clientIP(c))
		})
	}
}
