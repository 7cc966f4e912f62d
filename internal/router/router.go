package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mascotchat/mascotchat/internal/handler"
	"github.com/mascotchat/mascotchat/internal/middleware"
	"github.com/mascotchat/mascotchat/internal/service"
)

// SetupRouter 设置路由
// 限流只作用于 API 路由，静态资源不受影响
func SetupRouter(h *handler.Handlers, svc *service.Services, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(limiter))
	{
		// 认证
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)
		api.POST("/logout", h.Auth.Logout)
		api.GET("/user", middleware.RequireAuth(svc.Auth), h.Auth.CurrentUser)
		api.PATCH("/user/avatar", middleware.RequireAuth(svc.Auth), h.User.UpdateAvatar)

		// 消息
		messages := api.Group("/messages", middleware.RequireAuth(svc.Auth))
		{
			messages.GET("", h.Message.List)
			messages.POST("", h.Message.Send)
			messages.POST("/clear", h.Message.Clear)
		}

		// 建议
		api.GET("/suggestions", middleware.RequireAuth(svc.Auth), h.Message.Suggestions)
	}

	return r
}
