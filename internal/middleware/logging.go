package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// 日志行长度上限
const maxLogLine = 120

// LoggingMiddleware 日志中间件
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)

		line := c.Request.Method + " " + path
		if len(line) > maxLogLine {
			line = line[:maxLogLine-1] + "…"
		}
		log.Printf("%s | Status: %d | Latency: %v", line, c.Writer.Status(), latency)
	}
}
