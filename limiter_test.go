package articlepage

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestVisitorLimiterBlocksAfterBurst(t *testing.T) {
	limiter := NewVisitorLimiter(0.001, 2, time.Minute)
	defer limiter.Stop()
	ip := "203.0.113.10"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first request to be allowed")
	}
	if !limiter.Allow(ip) {
		t.Fatalf("expected second request to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected third request to be blocked")
	}
}

func TestVisitorLimiterRefills(t *testing.T) {
	limiter := NewVisitorLimiter(20, 1, time.Minute)
	defer limiter.Stop()
	ip := "203.0.113.20"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first request to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected second request to be blocked")
	}

	time.Sleep(100 * time.Millisecond)
	if !limiter.Allow(ip) {
		t.Fatalf("expected request after refill to be allowed")
	}
}

func TestVisitorLimiterIsPerIP(t *testing.T) {
	limiter := NewVisitorLimiter(0.001, 1, time.Minute)
	defer limiter.Stop()

	if !limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !limiter.Allow("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after burst")
	}
}

func TestVisitorLimiterEvictsIdleVisitors(t *testing.T) {
	limiter := NewVisitorLimiter(0.001, 1, time.Minute)
	defer limiter.Stop()
	ip := "203.0.113.40"

	limiter.Allow(ip)
	limiter.evict(time.Now().Add(2 * time.Minute))

	limiter.mu.Lock()
	n := len(limiter.visitors)
	limiter.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected idle visitor to be evicted, %d left", n)
	}
	if !limiter.Allow(ip) {
		t.Fatalf("expected evicted visitor to start with a fresh bucket")
	}
}

func TestVisitorLimiterMiddleware(t *testing.T) {
	limiter := NewVisitorLimiter(0.001, 1, time.Minute)
	defer limiter.Stop()

	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, limiter.Middleware())

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.50:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("request %d: got %d, want %d", i, rec.Code, want)
		}
		if want == http.StatusTooManyRequests {
			if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
				t.Errorf("request %d: Cache-Control = %q, want no-store", i, cc)
			}
		}
	}
}
