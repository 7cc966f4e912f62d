package model

import "fmt"

// 助手模式
const (
	ModeGeneral       = "general"
	ModeCodeAssistant = "code_assistant"
	ModeAnalyst       = "analyst"
)

// ChatSettings 单次消息携带的聊天设置
// 请求级配置，不独立持久化
type ChatSettings struct {
	Temperature  float64 `json:"temperature"`
	SystemPrompt string  `json:"systemPrompt"`
	Mode         string  `json:"mode"`
}

// Validate 校验设置
func (s *ChatSettings) Validate() error {
	if s.Temperature < 0 || s.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", s.Temperature)
	}
	switch s.Mode {
	case ModeGeneral, ModeCodeAssistant, ModeAnalyst:
	default:
		return fmt.Errorf("invalid mode: %q", s.Mode)
	}
	return nil
}

// DefaultChatSettings 默认聊天设置
func DefaultChatSettings() ChatSettings {
	return ChatSettings{
		Temperature: 1,
		Mode:        ModeGeneral,
	}
}
