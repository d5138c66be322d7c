package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_AllowsBurst(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("Expected request %d within burst to be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("Expected request beyond burst to be denied")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 1)
	defer rl.Stop()

	if !rl.Allow("1.2.3.4") {
		t.Fatal("Expected first request to be allowed")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("Expected second request from same key to be denied")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("Expected request from a different key to be allowed")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 2)
	defer rl.Stop()

	e := echo.New()
	handler := RateLimitMiddleware(rl)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/Auth/Login", nil)
		req.RemoteAddr = "9.9.9.9:1234"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := handler(c); err != nil {
			t.Fatalf("Handler returned error: %v", err)
		}
		return rec
	}

	first := do()
	if first.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", first.Code)
	}
	if first.Header().Get("X-RateLimit-Limit") == "" {
		t.Error("Expected X-RateLimit-Limit header on allowed request")
	}

	do()
	third := do()
	if third.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 after burst exhausted, got %d", third.Code)
	}
	if third.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header on limited request")
	}
	if third.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("Expected X-RateLimit-Remaining 0, got %q", third.Header().Get("X-RateLimit-Remaining"))
	}
}
