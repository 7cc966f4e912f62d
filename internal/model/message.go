package model

import (
	"math"
	"time"
)

// 消息角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// 消息类别
const (
	CategoryGeneral  = "general"
	CategoryCode     = "code"
	CategoryAnalysis = "analysis"
)

// Message 聊天消息
// Sentiment 内部统一使用 -1..1 浮点值，展示用的 1..5 只在 API 边界换算
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Role      string    `gorm:"size:20;index;not null" json:"role"`
	Sentiment float64   `gorm:"default:0" json:"-"`
	Category  string    `gorm:"size:20" json:"category"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"-"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "messages"
}

// ValidRole 判断角色是否合法
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// MessageView 消息的 API 视图
// 情感值已换算为吉祥物使用的 1..5 整数
type MessageView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	Sentiment int       `json:"sentiment"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToView 转换为 API 视图
func (m *Message) ToView() *MessageView {
	return &MessageView{
		ID:        m.ID,
		Content:   m.Content,
		Role:      m.Role,
		Sentiment: DisplaySentiment(m.Sentiment),
		Category:  m.Category,
		CreatedAt: m.CreatedAt,
	}
}

// DisplaySentiment 将 -1..1 的情感值换算为 1..5 的展示值
// 换算公式为 (s+1)*2+1，四舍五入后截断到 [1,5]
func DisplaySentiment(s float64) int {
	v := int(math.Round((s+1)*2)) + 1
	if v < 1 {
		v = 1
	}
	if v > 5 {
		v = 5
	}
	return v
}

// MessagesToViews 批量转换为 API 视图
func MessagesToViews(messages []*Message) []*MessageView {
	views := make([]*MessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, m.ToView())
	}
	return views
}
