// Package user 管理用户的吉祥物设置
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/mascotchat/mascotchat/internal/model"
	"github.com/mascotchat/mascotchat/internal/storage"
)

// ErrInvalidSettings 吉祥物设置不合法
var ErrInvalidSettings = errors.New("invalid avatar settings")

// Service 用户服务
type Service struct {
	store storage.Storage
}

// NewService 创建用户服务
func NewService(store storage.Storage) *Service {
	return &Service{store: store}
}

// UpdateAvatarRequest 吉祥物设置更新请求
type UpdateAvatarRequest struct {
	PrimaryColor   string `json:"primaryColor" binding:"required"`
	SecondaryColor string `json:"secondaryColor" binding:"required"`
	Shape          string `json:"shape" binding:"required"`
	Style          string `json:"style" binding:"required"`
	Animation      string `json:"animation" binding:"required"`
}

// Validate 校验枚举值
func (r *UpdateAvatarRequest) Validate() error {
	if !model.ValidShape(r.Shape) {
		return fmt.Errorf("%w: unknown shape %q", ErrInvalidSettings, r.Shape)
	}
	if !model.ValidStyle(r.Style) {
		return fmt.Errorf("%w: unknown style %q", ErrInvalidSettings, r.Style)
	}
	if !model.ValidAnimation(r.Animation) {
		return fmt.Errorf("%w: unknown animation %q", ErrInvalidSettings, r.Animation)
	}
	return nil
}

// UpdateAvatar 整体替换用户的吉祥物设置
func (s *Service) UpdateAvatar(ctx context.Context, userID uint, req *UpdateAvatarRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	settings := model.AvatarSettings{
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		Shape:          req.Shape,
		Style:          req.Style,
		Animation:      req.Animation,
	}
	return s.store.UpdateUserAvatar(ctx, userID, settings)
}
