package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mascotchat/mascotchat/internal/middleware"
	"github.com/mascotchat/mascotchat/internal/service"
	"github.com/mascotchat/mascotchat/internal/service/auth"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.Services
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *service.Services) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register 用户注册
// 成功返回 201 和用户（不含密码），同时建立会话
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	user, token, err := h.svc.Auth.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			Conflict(c, "Username already exists")
			return
		}
		log.Printf("registration failed: %v", err)
		InternalServerError(c)
		return
	}

	middleware.SetSessionCookie(c, token, int(h.svc.Auth.SessionTTL().Seconds()))
	c.JSON(http.StatusCreated, user)
}

// Login 用户登录
// 成功建立全新会话并返回用户
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	user, token, err := h.svc.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			Unauthorized(c, "Invalid username or password")
			return
		}
		log.Printf("login failed: %v", err)
		InternalServerError(c)
		return
	}

	middleware.SetSessionCookie(c, token, int(h.svc.Auth.SessionTTL().Seconds()))
	c.JSON(http.StatusOK, user)
}

// Logout 用户登出
// 销毁服务端会话并清除 cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if err := h.svc.Auth.Logout(c.Request.Context(), token); err != nil {
			log.Printf("logout failed: %v", err)
		}
	}

	middleware.ClearSessionCookie(c)
	c.Status(http.StatusOK)
}

// CurrentUser 获取当前登录用户
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		Unauthorized(c, "Unauthorized")
		return
	}
	c.JSON(http.StatusOK, user)
}
