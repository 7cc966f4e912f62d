package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	AI        AIConfig
	RateLimit RateLimitConfig
	Chat      ChatConfig
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host         string
	Port         int
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig 数据库配置
// URL 为空时使用内存存储
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
}

// RedisConfig Redis 配置
// Addr 为空时会话存储退化为内存实现
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig 认证配置
type AuthConfig struct {
	SessionSecret string
	SessionTTL    int // 会话有效期（分钟）
}

// AIConfig AI 配置
type AIConfig struct {
	APIKey          string
	BaseURL         string
	Model           string
	ClassifyTimeout int // 情感/类型分类超时（秒）
	ReplyTimeout    int // 回复生成超时（秒）
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Requests int
	Window   int // 窗口时长（秒）
}

// ChatConfig 聊天配置
type ChatConfig struct {
	Retention    int  // 内存存储的消息保留时长（小时），0 表示不清理
	ClearOnStart bool // 启动时清空消息日志
}

// Load 加载配置
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// 环境变量
	v.SetEnvPrefix("MASCOTCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate 校验必填项
func (c *Config) validate() error {
	if c.AI.APIKey == "" {
		return fmt.Errorf("ai.apiKey is required (MASCOTCHAT_AI_APIKEY)")
	}
	if c.Auth.SessionSecret == "" {
		return fmt.Errorf("auth.sessionSecret is required (MASCOTCHAT_AUTH_SESSIONSECRET)")
	}
	return nil
}

// GetAddr 获取服务器地址
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "mascotchat")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", true)

	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 60)

	// Database
	v.SetDefault("database.url", "")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.maxLifetime", 300)

	// Redis
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)

	// Auth
	v.SetDefault("auth.sessionSecret", "")
	v.SetDefault("auth.sessionTTL", 60)

	// AI
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.baseUrl", "https://api.openai.com/v1")
	v.SetDefault("ai.model", "gpt-4o")
	v.SetDefault("ai.classifyTimeout", 10)
	v.SetDefault("ai.replyTimeout", 60)

	// RateLimit
	v.SetDefault("ratelimit.requests", 60)
	v.SetDefault("ratelimit.window", 60)

	// Chat
	v.SetDefault("chat.retention", 24)
	v.SetDefault("chat.clearOnStart", false)
}
