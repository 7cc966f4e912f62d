// Package ai 封装对外部大模型的全部调用
// 情感、类型、建议均为尽力而为：提供方故障一律退化为中性默认值，绝不阻塞消息投递
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/kaptinlin/jsonrepair"

	"github.com/mascotchat/mascotchat/internal/config"
	"github.com/mascotchat/mascotchat/internal/model"
)

// ChatModel 生成接口，便于测试注入
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error)
}

// Service 分类适配器
type Service struct {
	chatModel       ChatModel
	classifyTimeout time.Duration
	replyTimeout    time.Duration
}

// NewService 创建分类适配器
func NewService(cm ChatModel, cfg *config.AIConfig) *Service {
	classifyTimeout := 10 * time.Second
	replyTimeout := 60 * time.Second
	if cfg != nil {
		if cfg.ClassifyTimeout > 0 {
			classifyTimeout = time.Duration(cfg.ClassifyTimeout) * time.Second
		}
		if cfg.ReplyTimeout > 0 {
			replyTimeout = time.Duration(cfg.ReplyTimeout) * time.Second
		}
	}
	return &Service{
		chatModel:       cm,
		classifyTimeout: classifyTimeout,
		replyTimeout:    replyTimeout,
	}
}

// ScoreSentiment 对用户消息打情感分，范围 -1..1
// 任何失败都返回中性 0
func (s *Service) ScoreSentiment(ctx context.Context, text string) float64 {
	ctx, cancel := context.WithTimeout(ctx, s.classifyTimeout)
	defer cancel()

	resp, err := s.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(fmt.Sprintf(sentimentPrompt, text)),
	})
	if err != nil {
		log.Printf("sentiment scoring failed: %v", err)
		return 0
	}

	var out struct {
		Score float64 `json:"score"`
	}
	if err := unmarshalRepaired(resp.Content, &out); err != nil {
		log.Printf("sentiment response unparseable: %v", err)
		return 0
	}

	return clamp(out.Score, -1, 1)
}

// ClassifyType 判断消息类别（general/code/analysis）
// 任何失败都返回 general
func (s *Service) ClassifyType(ctx context.Context, text string) string {
	ctx, cancel := context.WithTimeout(ctx, s.classifyTimeout)
	defer cancel()

	resp, err := s.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(fmt.Sprintf(classifyPrompt, text)),
	})
	if err != nil {
		log.Printf("type classification failed: %v", err)
		return model.CategoryGeneral
	}

	answer := strings.ToLower(strings.TrimSpace(resp.Content))
	switch {
	case strings.Contains(answer, model.CategoryCode):
		return model.CategoryCode
	case strings.Contains(answer, "analy"):
		return model.CategoryAnalysis
	default:
		return model.CategoryGeneral
	}
}

// GenerateReply 基于完整历史生成助手回复
// 瞬时的提供方故障（超时、限流、远端错误）被归类为降级回复正常返回；
// 只有非法设置才返回错误
func (s *Service) GenerateReply(ctx context.Context, history []*model.Message, settings *model.ChatSettings) (string, error) {
	if settings == nil {
		return "", errors.New("chat settings are required")
	}
	if err := settings.Validate(); err != nil {
		return "", fmt.Errorf("invalid chat settings: %w", err)
	}

	messages := make([]*schema.Message, 0, len(history)+2)
	messages = append(messages, schema.SystemMessage(modePrompts[settings.Mode]))
	if settings.SystemPrompt != "" {
		messages = append(messages, schema.SystemMessage(settings.SystemPrompt))
	}
	for _, m := range history {
		messages = append(messages, toSchemaMessage(m))
	}

	ctx, cancel := context.WithTimeout(ctx, s.replyTimeout)
	defer cancel()

	resp, err := s.chatModel.Generate(ctx, messages,
		einomodel.WithTemperature(float32(settings.Temperature)))
	if err != nil {
		log.Printf("reply generation failed: %v", err)
		return degradedReply(err), nil
	}

	if strings.TrimSpace(resp.Content) == "" {
		return genericReply, nil
	}
	return resp.Content, nil
}

// GenerateSuggestions 基于对话历史生成 3 条追问建议
// 任何失败都返回固定兜底列表
func (s *Service) GenerateSuggestions(ctx context.Context, history []*model.Message) []string {
	ctx, cancel := context.WithTimeout(ctx, s.classifyTimeout)
	defer cancel()

	resp, err := s.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(fmt.Sprintf(suggestionsPrompt, renderHistory(history, 6))),
	})
	if err != nil {
		log.Printf("suggestion generation failed: %v", err)
		return fallbackSuggestions
	}

	var suggestions []string
	if err := unmarshalRepaired(resp.Content, &suggestions); err != nil {
		log.Printf("suggestion response unparseable: %v", err)
		return fallbackSuggestions
	}

	out := make([]string, 0, 3)
	for _, sug := range suggestions {
		sug = strings.TrimSpace(sug)
		if sug == "" {
			continue
		}
		out = append(out, sug)
		if len(out) == 3 {
			break
		}
	}
	if len(out) == 0 {
		return fallbackSuggestions
	}
	return out
}

// degradedReply 将提供方故障归类为对用户可读的降级回复
func degradedReply(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return timeoutReply
	case strings.Contains(err.Error(), "429"),
		strings.Contains(strings.ToLower(err.Error()), "rate limit"):
		return rateLimitReply
	default:
		return genericReply
	}
}

// unmarshalRepaired 容错解析模型输出的 JSON
// 先按原样解析，失败后用 jsonrepair 修复再试
func unmarshalRepaired(content string, v interface{}) error {
	raw := strings.TrimSpace(content)
	// 剥掉 markdown 代码围栏
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}

	repaired, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return fmt.Errorf("repair failed: %w", err)
	}
	return json.Unmarshal([]byte(repaired), v)
}

// toSchemaMessage 将存储的消息转换为 eino 消息
func toSchemaMessage(m *model.Message) *schema.Message {
	switch m.Role {
	case model.RoleAssistant:
		return schema.AssistantMessage(m.Content, nil)
	case model.RoleSystem:
		return schema.SystemMessage(m.Content)
	default:
		return schema.UserMessage(m.Content)
	}
}

// renderHistory 渲染最近 n 条消息为纯文本
func renderHistory(history []*model.Message, n int) string {
	if len(history) > n {
		history = history[len(history)-n:]
	}
	var b strings.Builder
	for _, m := range history {
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
