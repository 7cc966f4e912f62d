// Package chat 实现消息处理流水线
// 校验 → 分类 → 持久化用户消息 → 组装上下文 → 生成回复 → 持久化助手消息
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/mascotchat/mascotchat/internal/model"
	"github.com/mascotchat/mascotchat/internal/storage"
)

var (
	// ErrValidation 请求体不合法，无任何副作用
	ErrValidation = errors.New("validation failed")
	// ErrReplyFailed 回复生成或持久化出现不可恢复故障
	// 此时日志中已补写一条致歉消息
	ErrReplyFailed = errors.New("reply generation failed")
)

// 不可恢复故障时补写的致歉消息
const apologyMessage = "Sorry, something went wrong while generating a response. Please try again."

// Assistant 流水线依赖的模型能力
type Assistant interface {
	ScoreSentiment(ctx context.Context, text string) float64
	ClassifyType(ctx context.Context, text string) string
	GenerateReply(ctx context.Context, history []*model.Message, settings *model.ChatSettings) (string, error)
	GenerateSuggestions(ctx context.Context, history []*model.Message) []string
}

// Service 聊天服务
type Service struct {
	store     storage.Storage
	assistant Assistant
}

// NewService 创建聊天服务
func NewService(store storage.Storage, assistant Assistant) *Service {
	return &Service{store: store, assistant: assistant}
}

// SendResult 一次消息处理的结果：用户消息与助手回复成对返回
type SendResult struct {
	UserMessage *model.Message
	AIMessage   *model.Message
}

// Send 处理一条入站用户消息
func (s *Service) Send(ctx context.Context, content string, settings *model.ChatSettings) (*SendResult, error) {
	// 1. 校验，失败无副作用
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content must not be empty", ErrValidation)
	}
	if settings == nil {
		return nil, fmt.Errorf("%w: settings are required", ErrValidation)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// 2. 情感与类型并发打分，均为尽力而为
	var (
		sentiment float64
		category  string
		wg        sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		sentiment = s.assistant.ScoreSentiment(ctx, content)
	}()
	go func() {
		defer wg.Done()
		category = s.assistant.ClassifyType(ctx, content)
	}()
	wg.Wait()

	// 3. 先打分后落库，消息携带元数据原子写入
	userMsg := &model.Message{
		Content:   content,
		Role:      model.RoleUser,
		Sentiment: sentiment,
		Category:  category,
	}
	if err := s.store.CreateMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to persist user message: %w", err)
	}

	// 4. 组装完整对话历史
	history, err := s.store.GetMessages(ctx)
	if err != nil {
		return nil, s.failWithApology(ctx, category, fmt.Errorf("failed to load history: %w", err))
	}

	// 5. 生成回复；瞬时的提供方故障已在适配器内降级
	reply, err := s.assistant.GenerateReply(ctx, history, settings)
	if err != nil {
		return nil, s.failWithApology(ctx, category, fmt.Errorf("failed to generate reply: %w", err))
	}

	// 6. 持久化助手消息，情感中性，类别沿用触发它的用户消息
	aiMsg := &model.Message{
		Content:   reply,
		Role:      model.RoleAssistant,
		Sentiment: 0,
		Category:  category,
	}
	if err := s.store.CreateMessage(ctx, aiMsg); err != nil {
		return nil, s.failWithApology(ctx, category, fmt.Errorf("failed to persist reply: %w", err))
	}

	return &SendResult{UserMessage: userMsg, AIMessage: aiMsg}, nil
}

// failWithApology 补写一条致歉的助手消息，保证用户消息不会无应答悬空
func (s *Service) failWithApology(ctx context.Context, category string, cause error) error {
	log.Printf("message pipeline fault: %v", cause)

	apology := &model.Message{
		Content:   apologyMessage,
		Role:      model.RoleAssistant,
		Sentiment: 0,
		Category:  category,
	}
	if err := s.store.CreateMessage(ctx, apology); err != nil {
		log.Printf("failed to persist apology message: %v", err)
	}
	return fmt.Errorf("%w: %v", ErrReplyFailed, cause)
}

// List 返回按创建顺序排列的完整消息日志
func (s *Service) List(ctx context.Context) ([]*model.Message, error) {
	return s.store.GetMessages(ctx)
}

// Clear 清空消息日志，可重复调用
func (s *Service) Clear(ctx context.Context) error {
	return s.store.ClearMessages(ctx)
}

// Suggestions 基于当前历史生成追问建议，失败时退化为固定列表
func (s *Service) Suggestions(ctx context.Context) []string {
	history, err := s.store.GetMessages(ctx)
	if err != nil {
		log.Printf("failed to load history for suggestions: %v", err)
		history = nil
	}
	return s.assistant.GenerateSuggestions(ctx, history)
}
