package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mascotchat/mascotchat/internal/model"
)

func TestMemorySessionsLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessions()

	now := time.Now()
	s.now = func() time.Time { return now }

	sess := &model.Session{ID: "sid-1", UserID: 42, CreatedAt: now}
	if err := s.Create(ctx, sess, time.Hour); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.UserID != 42 {
		t.Errorf("got user id %d, want 42", got.UserID)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() unknown id error = %v, want ErrNotFound", err)
	}

	if err := s.Destroy(ctx, "sid-1"); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if _, err := s.Get(ctx, "sid-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after destroy error = %v, want ErrNotFound", err)
	}

	// 重复销毁不报错
	if err := s.Destroy(ctx, "sid-1"); err != nil {
		t.Errorf("Destroy() twice error = %v", err)
	}
}

func TestMemorySessionsExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessions()

	now := time.Now()
	s.now = func() time.Time { return now }

	sess := &model.Session{ID: "sid-1", UserID: 1, CreatedAt: now}
	if err := s.Create(ctx, sess, time.Minute); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// TTL 之内可读
	if _, err := s.Get(ctx, "sid-1"); err != nil {
		t.Fatalf("Get() within ttl error = %v", err)
	}

	// 过期即不存在
	now = now.Add(2 * time.Minute)
	if _, err := s.Get(ctx, "sid-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after expiry error = %v, want ErrNotFound", err)
	}
	if err := s.Renew(ctx, "sid-1", time.Minute); !errors.Is(err, ErrNotFound) {
		t.Errorf("Renew() after expiry error = %v, want ErrNotFound", err)
	}
}

func TestMemorySessionsRenew(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessions()

	now := time.Now()
	s.now = func() time.Time { return now }

	sess := &model.Session{ID: "sid-1", UserID: 1, CreatedAt: now}
	if err := s.Create(ctx, sess, time.Minute); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// 滚动续期使会话越过原过期点
	now = now.Add(50 * time.Second)
	if err := s.Renew(ctx, "sid-1", time.Minute); err != nil {
		t.Fatalf("Renew() error = %v", err)
	}

	now = now.Add(50 * time.Second)
	if _, err := s.Get(ctx, "sid-1"); err != nil {
		t.Errorf("Get() after renew error = %v", err)
	}
}
