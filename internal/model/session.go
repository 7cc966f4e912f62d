package model

import "time"

// Session 服务端会话记录
// 通过 SessionStore 持久化，带 TTL
type Session struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired 判断会话是否已过期
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
