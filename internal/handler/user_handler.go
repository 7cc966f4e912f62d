package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mascotchat/mascotchat/internal/middleware"
	"github.com/mascotchat/mascotchat/internal/service"
	"github.com/mascotchat/mascotchat/internal/service/user"
	"github.com/mascotchat/mascotchat/internal/storage"
)

// UserHandler 用户处理器
type UserHandler struct {
	svc *service.Services
}

// NewUserHandler 创建用户处理器
func NewUserHandler(svc *service.Services) *UserHandler {
	return &UserHandler{svc: svc}
}

// UpdateAvatar 整体替换当前用户的吉祥物设置
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	current, ok := middleware.GetCurrentUser(c)
	if !ok {
		Unauthorized(c, "Unauthorized")
		return
	}

	var req user.UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	updated, err := h.svc.User.UpdateAvatar(c.Request.Context(), current.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidSettings):
			BadRequest(c, err.Error())
		case errors.Is(err, storage.ErrNotFound):
			NotFound(c, "User not found")
		default:
			log.Printf("failed to update avatar: %v", err)
			InternalServerError(c)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}
