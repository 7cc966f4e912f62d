package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)
	now := time.Now()
	limiter.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if ok, _ := limiter.Allow("1.2.3.4"); !ok {
			t.Fatalf("request %d rejected within limit", i+1)
		}
	}

	ok, retryAfter := limiter.Allow("1.2.3.4")
	if ok {
		t.Fatal("request over limit allowed")
	}
	if retryAfter < 1 || retryAfter > 60 {
		t.Errorf("retryAfter = %d, want within (0, 60]", retryAfter)
	}

	// 其他客户端不受影响
	if ok, _ := limiter.Allow("5.6.7.8"); !ok {
		t.Error("independent client rejected")
	}

	// 窗口滚动后计数重置
	now = now.Add(61 * time.Second)
	if ok, _ := limiter.Allow("1.2.3.4"); !ok {
		t.Error("request after window reset rejected")
	}
}

func TestRateLimiterReset(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)

	if ok, _ := limiter.Allow("1.2.3.4"); !ok {
		t.Fatal("first request rejected")
	}
	if ok, _ := limiter.Allow("1.2.3.4"); ok {
		t.Fatal("second request allowed over limit")
	}

	limiter.Reset()
	if ok, _ := limiter.Allow("1.2.3.4"); !ok {
		t.Error("request after reset rejected")
	}
}

func TestRateLimiterDefaults(t *testing.T) {
	limiter := NewRateLimiter(0, 0)
	if limiter.limit != 60 || limiter.window != time.Minute {
		t.Errorf("defaults = (%d, %v), want (60, 1m)", limiter.limit, limiter.window)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(2, time.Minute)
	router := gin.New()
	router.Use(RateLimitMiddleware(limiter))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	doRequest := func(ip string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Forwarded-For", ip)
		router.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := doRequest("1.2.3.4"); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, w.Code)
		}
	}

	w := doRequest("1.2.3.4")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}

	var body struct {
		Error      string `json:"error"`
		Message    string `json:"message"`
		RetryAfter int    `json:"retryAfter"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Error == "" || body.Message == "" || body.RetryAfter < 1 {
		t.Errorf("unexpected 429 body: %+v", body)
	}

	// 不同来源 IP 各自计数
	if w := doRequest("5.6.7.8, 10.0.0.1"); w.Code != http.StatusOK {
		t.Errorf("independent client status = %d, want 200", w.Code)
	}
}
