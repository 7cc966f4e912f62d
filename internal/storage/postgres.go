package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mascotchat/mascotchat/internal/config"
	"github.com/mascotchat/mascotchat/internal/model"
)

// Postgres 关系型存储实现
type Postgres struct {
	db       *gorm.DB
	sessions SessionStore
}

var _ Storage = (*Postgres)(nil)

// NewPostgres 创建 Postgres 存储
func NewPostgres(cfg *config.Config, sessions SessionStore) (*Postgres, error) {
	logLevel := gormlogger.Silent
	if cfg.App.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database: %w", err)
	}

	// 连接池配置
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.MaxLifetime) * time.Second)

	// 健康检查
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// 自动迁移
	if err := db.AutoMigrate(model.AllModels...); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	return &Postgres{db: db, sessions: sessions}, nil
}

// GetMessages 按创建顺序返回全部消息
func (p *Postgres) GetMessages(ctx context.Context) ([]*model.Message, error) {
	var messages []*model.Message
	err := p.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&messages).Error
	return messages, err
}

// CreateMessage 追加消息
func (p *Postgres) CreateMessage(ctx context.Context, msg *model.Message) error {
	return p.db.WithContext(ctx).Create(msg).Error
}

// ClearMessages 清空消息日志
func (p *Postgres) ClearMessages(ctx context.Context) error {
	return p.db.WithContext(ctx).Where("1 = 1").Delete(&model.Message{}).Error
}

// GetUser 获取用户
func (p *Postgres) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := p.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetUserByUsername 按用户名获取用户
func (p *Postgres) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := p.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// CreateUser 创建用户，用户名重复返回 ErrConflict
func (p *Postgres) CreateUser(ctx context.Context, user *model.User) error {
	if err := p.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// UpdateUserAvatar 整体替换用户的吉祥物设置
func (p *Postgres) UpdateUserAvatar(ctx context.Context, id uint, settings model.AvatarSettings) (*model.User, error) {
	var user model.User
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return translateError(err)
		}
		user.Avatar = settings
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Sessions 返回会话存储
func (p *Postgres) Sessions() SessionStore {
	return p.sessions
}

// Close 关闭数据库连接
func (p *Postgres) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translateError 将 gorm 错误映射为存储层哨兵错误
func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	}
	return err
}
