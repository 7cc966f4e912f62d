package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mascotchat/mascotchat/internal/model"
	"github.com/mascotchat/mascotchat/internal/service"
	"github.com/mascotchat/mascotchat/internal/service/chat"
)

// MessageHandler 消息处理器
type MessageHandler struct {
	svc *service.Services
}

// NewMessageHandler 创建消息处理器
func NewMessageHandler(svc *service.Services) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	Content  string             `json:"content" binding:"required"`
	Settings model.ChatSettings `json:"settings"`
}

// List 返回按对话顺序排列的全部消息
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.svc.Chat.List(c.Request.Context())
	if err != nil {
		log.Printf("failed to list messages: %v", err)
		InternalServerError(c)
		return
	}
	c.JSON(http.StatusOK, model.MessagesToViews(messages))
}

// Send 处理一条用户消息，返回用户消息与助手回复对
func (h *MessageHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.svc.Chat.Send(c.Request.Context(), req.Content, &req.Settings)
	if err != nil {
		if errors.Is(err, chat.ErrValidation) {
			BadRequest(c, err.Error())
			return
		}
		log.Printf("failed to process message: %v", err)
		InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userMessage": result.UserMessage.ToView(),
		"aiMessage":   result.AIMessage.ToView(),
	})
}

// Clear 清空消息日志
func (h *MessageHandler) Clear(c *gin.Context) {
	if err := h.svc.Chat.Clear(c.Request.Context()); err != nil {
		log.Printf("failed to clear messages: %v", err)
		InternalServerError(c)
		return
	}
	c.Status(http.StatusOK)
}

// Suggestions 返回至多 3 条追问建议
func (h *MessageHandler) Suggestions(c *gin.Context) {
	suggestions := h.svc.Chat.Suggestions(c.Request.Context())
	c.JSON(http.StatusOK, suggestions)
}
