// Package handler 实现 HTTP 处理器
package handler

import "github.com/mascotchat/mascotchat/internal/service"

// Handlers 处理器集合
type Handlers struct {
	Auth    *AuthHandler
	Message *MessageHandler
	User    *UserHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(svc),
		Message: NewMessageHandler(svc),
		User:    NewUserHandler(svc),
	}
}
