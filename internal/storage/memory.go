package storage

import (
	"context"
	"sync"
	"time"

	"github.com/mascotchat/mascotchat/internal/model"
)

// 内存存储的清理检查周期
const pruneInterval = time.Hour

// Memory 内存存储实现
// 追加是持锁的原子操作，ID 单调递增
type Memory struct {
	mu        sync.RWMutex
	messages  []*model.Message
	users     map[uint]*model.User
	usernames map[string]uint
	nextMsgID uint
	nextUsrID uint

	sessions  SessionStore
	retention time.Duration
	stop      chan struct{}
	stopOnce  sync.Once
}

var _ Storage = (*Memory)(nil)

// NewMemory 创建内存存储
// retention > 0 时后台定期丢弃超过保留窗口的消息，仅作为内存上限保护
func NewMemory(sessions SessionStore, retention time.Duration) *Memory {
	m := &Memory{
		users:     make(map[uint]*model.User),
		usernames: make(map[string]uint),
		nextMsgID: 1,
		nextUsrID: 1,
		sessions:  sessions,
		retention: retention,
		stop:      make(chan struct{}),
	}
	if retention > 0 {
		go m.janitor()
	}
	return m
}

// GetMessages 按创建顺序返回全部消息
func (m *Memory) GetMessages(ctx context.Context) ([]*model.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*model.Message, len(m.messages))
	copy(out, m.messages)
	return out, nil
}

// CreateMessage 追加消息，分配 ID 和时间戳
func (m *Memory) CreateMessage(ctx context.Context, msg *model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg.ID = m.nextMsgID
	m.nextMsgID++
	msg.CreatedAt = time.Now()
	m.messages = append(m.messages, msg)
	return nil
}

// ClearMessages 清空消息日志
func (m *Memory) ClearMessages(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = nil
	return nil
}

// GetUser 获取用户
func (m *Memory) GetUser(ctx context.Context, id uint) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *user
	return &cp, nil
}

// GetUserByUsername 按用户名获取用户
func (m *Memory) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.usernames[username]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *m.users[id]
	return &cp, nil
}

// CreateUser 创建用户，用户名重复返回 ErrConflict
func (m *Memory) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.usernames[user.Username]; ok {
		return ErrConflict
	}

	user.ID = m.nextUsrID
	m.nextUsrID++
	user.CreatedAt = time.Now()

	cp := *user
	m.users[user.ID] = &cp
	m.usernames[user.Username] = user.ID
	return nil
}

// UpdateUserAvatar 整体替换用户的吉祥物设置
func (m *Memory) UpdateUserAvatar(ctx context.Context, id uint, settings model.AvatarSettings) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	user.Avatar = settings
	cp := *user
	return &cp, nil
}

// Sessions 返回会话存储
func (m *Memory) Sessions() SessionStore {
	return m.sessions
}

// Close 停止后台清理
func (m *Memory) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	return nil
}

// janitor 定期丢弃超过保留窗口的消息
func (m *Memory) janitor() {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.prune(time.Now().Add(-m.retention))
		}
	}
}

// prune 丢弃 cutoff 之前创建的消息
func (m *Memory) prune(cutoff time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// 消息按创建时间升序，找到第一条保留的即可
	i := 0
	for i < len(m.messages) && m.messages[i].CreatedAt.Before(cutoff) {
		i++
	}
	if i > 0 {
		m.messages = append([]*model.Message(nil), m.messages[i:]...)
	}
}
