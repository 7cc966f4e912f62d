package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mascotchat/mascotchat/internal/storage"
)

const testSecret = "test-session-secret"

func newTestService() (*Service, *storage.Memory) {
	store := storage.NewMemory(storage.NewMemorySessions(), 0)
	return NewService(store, testSecret, time.Hour), store
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()
	defer store.Close()

	user, token, err := svc.Register(ctx, &RegisterRequest{Username: "ada", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == 0 || user.Username != "ada" {
		t.Errorf("unexpected user: %+v", user)
	}
	if token == "" {
		t.Error("expected session token")
	}

	// 密码只存哈希
	if user.PasswordHash == "secret1" {
		t.Error("password stored in plain text")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")) != nil {
		t.Error("stored hash does not match password")
	}

	// 默认头像已就位
	if user.Avatar.PrimaryColor == "" || user.Avatar.Shape == "" {
		t.Errorf("default avatar not applied: %+v", user.Avatar)
	}

	// 注册即登录
	got, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("Authenticate() after register error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("authenticated user id = %d, want %d", got.ID, user.ID)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()
	defer store.Close()

	if _, _, err := svc.Register(ctx, &RegisterRequest{Username: "ada", Password: "secret1"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, _, err := svc.Register(ctx, &RegisterRequest{Username: "ada", Password: "other66"}); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Register() duplicate error = %v, want ErrUsernameTaken", err)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()
	defer store.Close()

	registered, _, err := svc.Register(ctx, &RegisterRequest{Username: "ada", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, token, err := svc.Login(ctx, &LoginRequest{Username: "ada", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("login user id = %d, want %d", user.ID, registered.ID)
	}
	if _, err := svc.Authenticate(ctx, token); err != nil {
		t.Errorf("Authenticate() after login error = %v", err)
	}

	// 密码错误与用户不存在返回同一个错误
	if _, _, err := svc.Login(ctx, &LoginRequest{Username: "ada", Password: "wrong66"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, &LoginRequest{Username: "nobody", Password: "secret1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() unknown user error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()
	defer store.Close()

	_, token, err := svc.Register(ctx, &RegisterRequest{Username: "ada", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Authenticate() after logout error = %v, want ErrInvalidSession", err)
	}

	// 重复登出与垃圾令牌都不报错
	if err := svc.Logout(ctx, token); err != nil {
		t.Errorf("Logout() twice error = %v", err)
	}
	if err := svc.Logout(ctx, "not-a-token"); err != nil {
		t.Errorf("Logout() garbage token error = %v", err)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()
	defer store.Close()

	_, token, err := svc.Register(ctx, &RegisterRequest{Username: "ada", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not-a-token"},
		{name: "tampered token", token: token + "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Authenticate(ctx, tt.token); !errors.Is(err, ErrInvalidSession) {
				t.Errorf("Authenticate() error = %v, want ErrInvalidSession", err)
			}
		})
	}

	// 别的密钥签出的令牌不被接受
	other := NewService(store, "another-secret", time.Hour)
	otherToken, err := other.signToken("some-session")
	if err != nil {
		t.Fatalf("signToken() error = %v", err)
	}
	if _, err := svc.Authenticate(ctx, otherToken); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Authenticate() foreign token error = %v, want ErrInvalidSession", err)
	}
}

func TestAuthenticateUnknownSession(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()
	defer store.Close()

	// 签名合法但服务端没有对应会话记录
	token, err := svc.signToken("ghost-session")
	if err != nil {
		t.Fatalf("signToken() error = %v", err)
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Authenticate() error = %v, want ErrInvalidSession", err)
	}
}
