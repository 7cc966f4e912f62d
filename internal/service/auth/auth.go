// Package auth 实现用户名密码注册登录与服务端会话
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mascotchat/mascotchat/internal/model"
	"github.com/mascotchat/mascotchat/internal/storage"
)

var (
	// ErrUsernameTaken 用户名已被占用
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidSession 会话缺失、伪造或已过期
	ErrInvalidSession = errors.New("invalid or expired session")
)

// Service 认证服务
type Service struct {
	store      storage.Storage
	secret     []byte
	sessionTTL time.Duration
}

// NewService 创建认证服务
func NewService(store storage.Storage, secret string, sessionTTL time.Duration) *Service {
	if sessionTTL <= 0 {
		sessionTTL = time.Hour
	}
	return &Service{
		store:      store,
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
	}
}

// SessionTTL 会话有效期
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 注册用户并建立会话
// 用户名重复返回 ErrUsernameTaken，密码只保存 bcrypt 哈希
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*model.User, string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hashed),
		Avatar:       model.DefaultAvatarSettings(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, "", ErrUsernameTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	// 注册即登录
	token, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 校验凭据并建立全新会话
// 用户不存在与密码错误返回同一个错误，避免泄露用户名是否注册
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*model.User, string, error) {
	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout 销毁服务端会话，会话已不存在时也不报错
func (s *Service) Logout(ctx context.Context, token string) error {
	sid, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	return s.store.Sessions().Destroy(ctx, sid)
}

// Authenticate 解析令牌、校验会话并滚动续期，返回会话绑定的用户
func (s *Service) Authenticate(ctx context.Context, token string) (*model.User, error) {
	sid, err := s.parseToken(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	sess, err := s.store.Sessions().Get(ctx, sid)
	if err != nil {
		return nil, ErrInvalidSession
	}

	// 滚动续期：每次有效访问都刷新过期时间
	if err := s.store.Sessions().Renew(ctx, sid, s.sessionTTL); err != nil {
		return nil, ErrInvalidSession
	}

	user, err := s.store.GetUser(ctx, sess.UserID)
	if err != nil {
		return nil, ErrInvalidSession
	}
	return user, nil
}

// createSession 写入会话记录并返回签名后的令牌
func (s *Service) createSession(ctx context.Context, userID uint) (string, error) {
	now := time.Now()
	sess := &model.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.store.Sessions().Create(ctx, sess, s.sessionTTL); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return s.signToken(sess.ID)
}

// signToken 用会话签名密钥对会话 ID 做 HS256 签名
func (s *Service) signToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// parseToken 校验签名并取出会话 ID
func (s *Service) parseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("invalid session id in token")
	}
	return sid, nil
}
