package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mascotchat/mascotchat/internal/config"
	"github.com/mascotchat/mascotchat/internal/handler"
	"github.com/mascotchat/mascotchat/internal/middleware"
	"github.com/mascotchat/mascotchat/internal/router"
	"github.com/mascotchat/mascotchat/internal/service"
	"github.com/mascotchat/mascotchat/internal/storage"
)

func main() {
	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if _, err := os.Stat("./configs/config.yaml"); err == nil {
			configPath = "./configs/config.yaml"
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置 Gin 模式
	gin.SetMode(cfg.Server.Mode)

	// 会话存储：配置了 Redis 用 Redis，否则退化为内存
	var sessions storage.SessionStore
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		sessions = storage.NewRedisSessions(redisClient)
		log.Printf("Session store: redis (%s)", cfg.Redis.Addr)
	} else {
		sessions = storage.NewMemorySessions()
		log.Printf("Session store: in-memory")
	}

	// 消息/用户存储：配置了数据库连接串用 Postgres，否则用内存
	var store storage.Storage
	if cfg.Database.URL != "" {
		store, err = storage.NewPostgres(cfg, sessions)
		if err != nil {
			log.Fatalf("Failed to init database: %v", err)
		}
		log.Printf("Storage: postgres")
	} else {
		store = storage.NewMemory(sessions, time.Duration(cfg.Chat.Retention)*time.Hour)
		log.Printf("Storage: in-memory")
	}
	defer store.Close()

	// 启动时按需清空历史
	if cfg.Chat.ClearOnStart {
		if err := store.ClearMessages(context.Background()); err != nil {
			log.Printf("Failed to clear chat history: %v", err)
		} else {
			log.Printf("Chat history cleared on start")
		}
	}

	// 初始化各层
	services, err := service.NewServices(store, cfg)
	if err != nil {
		log.Fatalf("Failed to init services: %v", err)
	}
	handlers := handler.NewHandlers(services)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, time.Duration(cfg.RateLimit.Window)*time.Second)

	// 初始化路由
	r := router.SetupRouter(handlers, services, limiter)

	// 创建 HTTP 服务器
	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// 启动服务器
	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
