// Package storage 定义消息与用户的持久化契约
// 内存与 Postgres 两种实现可互换，由启动配置选择
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mascotchat/mascotchat/internal/model"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrConflict 唯一约束冲突（如用户名已存在）
	ErrConflict = errors.New("record already exists")
)

// Storage 存储接口
type Storage interface {
	// 消息日志
	GetMessages(ctx context.Context) ([]*model.Message, error)
	CreateMessage(ctx context.Context, msg *model.Message) error
	ClearMessages(ctx context.Context) error

	// 用户
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUserAvatar(ctx context.Context, id uint, settings model.AvatarSettings) (*model.User, error)

	// 会话存储能力，供认证组件使用
	Sessions() SessionStore

	Close() error
}

// SessionStore 会话存储接口
// 记录均绑定 TTL，过期视为不存在
type SessionStore interface {
	Create(ctx context.Context, sess *model.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Renew(ctx context.Context, id string, ttl time.Duration) error
	Destroy(ctx context.Context, id string) error
}
