package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mascotchat/mascotchat/internal/model"
)

// Redis key 前缀
const sessionKeyPrefix = "session:"

// RedisSessions Redis 会话存储
// 记录以 JSON 存放，TTL 交给 Redis 过期机制
type RedisSessions struct {
	client *redis.Client
}

var _ SessionStore = (*RedisSessions)(nil)

// NewRedisSessions 创建 Redis 会话存储
func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client}
}

// Create 写入会话
func (s *RedisSessions) Create(ctx context.Context, sess *model.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+sess.ID, data, ttl).Err()
}

// Get 读取会话，过期或不存在返回 ErrNotFound
func (s *RedisSessions) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var sess model.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Renew 滚动续期
func (s *RedisSessions) Renew(ctx context.Context, id string, ttl time.Duration) error {
	ok, err := s.client.Expire(ctx, sessionKeyPrefix+id, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Destroy 删除会话
func (s *RedisSessions) Destroy(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}

// MemorySessions 内存会话存储
type MemorySessions struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
	now      func() time.Time
}

var _ SessionStore = (*MemorySessions)(nil)

// NewMemorySessions 创建内存会话存储
func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		sessions: make(map[string]*model.Session),
		now:      time.Now,
	}
}

// Create 写入会话
func (s *MemorySessions) Create(ctx context.Context, sess *model.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *sess
	cp.ExpiresAt = s.now().Add(ttl)
	s.sessions[sess.ID] = &cp
	return nil
}

// Get 读取会话，过期即删除并返回 ErrNotFound
func (s *MemorySessions) Get(ctx context.Context, id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

// Renew 滚动续期
func (s *MemorySessions) Renew(ctx context.Context, id string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.Expired(s.now()) {
		delete(s.sessions, id)
		return ErrNotFound
	}
	sess.ExpiresAt = s.now().Add(ttl)
	return nil
}

// Destroy 删除会话
func (s *MemorySessions) Destroy(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
