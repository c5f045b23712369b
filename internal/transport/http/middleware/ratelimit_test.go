package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func limiterEngine(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", mw, func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func post(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitPerIP_BurstExhaustion(t *testing.T) {
	// 回填速率取到近零，桶漏空后必须立刻 429
	r := limiterEngine(RateLimitPerIP(0.001, 2))

	for i := 0; i < 2; i++ {
		if rec := post(r, "203.0.113.7"); rec.Code != http.StatusOK {
			t.Fatalf("request %d within burst: got %d", i+1, rec.Code)
		}
	}
	if rec := post(r, "203.0.113.7"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", rec.Code)
	}
}

func TestRateLimitPerIP_IsolatesClients(t *testing.T) {
	r := limiterEngine(RateLimitPerIP(0.001, 1))

	if rec := post(r, "203.0.113.7"); rec.Code != http.StatusOK {
		t.Fatalf("first client: got %d", rec.Code)
	}
	if rec := post(r, "203.0.113.7"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("first client should be limited, got %d", rec.Code)
	}
	// 另一个 IP 不受影响
	if rec := post(r, "198.51.100.9"); rec.Code != http.StatusOK {
		t.Fatalf("second client must have its own bucket, got %d", rec.Code)
	}
}

func TestRateLimit_Global(t *testing.T) {
	r := limiterEngine(RateLimit(0.001, 1))

	if rec := post(r, "203.0.113.7"); rec.Code != http.StatusOK {
		t.Fatalf("first request: got %d", rec.Code)
	}
	// 全局桶：换 IP 也一样被拒
	if rec := post(r, "198.51.100.9"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected shared bucket to reject, got %d", rec.Code)
	}
}
