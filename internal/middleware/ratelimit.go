package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter 固定窗口限流器，按客户端 IP 计数
// 状态是进程内的注入对象而非包级全局，测试可以随意重建
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	limit   int
	window  time.Duration
	now     func() time.Time
}

type windowEntry struct {
	count     int
	resetTime time.Time
}

// NewRateLimiter 创建限流器
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		entries: make(map[string]*windowEntry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow 判断该客户端当前窗口内是否放行
// 拒绝时返回距窗口重置的秒数
func (r *RateLimiter) Allow(key string) (bool, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	entry, ok := r.entries[key]
	if !ok || now.After(entry.resetTime) {
		r.entries[key] = &windowEntry{count: 1, resetTime: now.Add(r.window)}
		return true, 0
	}

	if entry.count >= r.limit {
		retryAfter := int(math.Ceil(entry.resetTime.Sub(now).Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		return false, retryAfter
	}

	entry.count++
	return true, 0
}

// Reset 清空计数，供测试使用
func (r *RateLimiter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*windowEntry)
}

// RateLimitMiddleware 限流中间件，只挂在 API 路由上
func RateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retryAfter := limiter.Allow(clientIP(c))
		if !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "Too many requests",
				"message":    fmt.Sprintf("Please try again in %d seconds", retryAfter),
				"retryAfter": retryAfter,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// clientIP 解析客户端地址，优先取 X-Forwarded-For 的第一跳
func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			fwd = fwd[:i]
		}
		if ip := strings.TrimSpace(fwd); ip != "" {
			return ip
		}
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
