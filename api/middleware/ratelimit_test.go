package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prospectkit/prospect/config"
)

func TestRateLimit_BurstExceeded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 3}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	var ok, limited int
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		switch w.Code {
		case http.StatusOK:
			ok++
		case http.StatusTooManyRequests:
			limited++
		default:
			t.Fatalf("unexpected status %d", w.Code)
		}
	}

	if ok != 3 {
		t.Errorf("allowed %d requests, want burst of 3", ok)
	}
	if limited != 7 {
		t.Errorf("limited %d requests, want 7", limited)
	}
}

func TestRateLimit_PerIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Set distinct identities the way the auth middleware would.
	r.Use(func(c *gin.Context) {
		c.Set("api_key", c.GetHeader("X-API-Key"))
	})
	r.Use(RateLimit(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	send := func(key string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-API-Key", key)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if got := send("alpha"); got != http.StatusOK {
		t.Errorf("first request for alpha = %d", got)
	}
	if got := send("alpha"); got != http.StatusTooManyRequests {
		t.Errorf("second request for alpha = %d, want 429", got)
	}
	// A different key has its own bucket.
	if got := send("beta"); got != http.StatusOK {
		t.Errorf("first request for beta = %d", got)
	}
}
