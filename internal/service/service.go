package service

import (
	"context"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"

	"github.com/mascotchat/mascotchat/internal/config"
	"github.com/mascotchat/mascotchat/internal/service/ai"
	"github.com/mascotchat/mascotchat/internal/service/auth"
	"github.com/mascotchat/mascotchat/internal/service/chat"
	"github.com/mascotchat/mascotchat/internal/service/user"
	"github.com/mascotchat/mascotchat/internal/storage"
)

// Services 服务集合
type Services struct {
	Chat *chat.Service
	Auth *auth.Service
	User *user.Service
	AI   *ai.Service

	Config *config.Config
}

// NewServices 创建所有服务
func NewServices(store storage.Storage, cfg *config.Config) (*Services, error) {
	ctx := context.Background()

	chatModel, err := newChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}

	aiSvc := ai.NewService(chatModel, &cfg.AI)

	return &Services{
		Chat:   chat.NewService(store, aiSvc),
		Auth:   auth.NewService(store, cfg.Auth.SessionSecret, time.Duration(cfg.Auth.SessionTTL)*time.Minute),
		User:   user.NewService(store),
		AI:     aiSvc,
		Config: cfg,
	}, nil
}

// newChatModel 创建 ChatModel
func newChatModel(ctx context.Context, cfg *config.Config) (ai.ChatModel, error) {
	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
	})
}
