package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mascotchat/mascotchat/internal/model"
	"github.com/mascotchat/mascotchat/internal/service/auth"
)

// SessionCookie 会话 cookie 名称
const SessionCookie = "sess"

// RequireAuth 要求有效会话的中间件
// 未认证一律返回 401 JSON，不做重定向；有效访问滚动续期并刷新 cookie
func RequireAuth(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			c.Abort()
			return
		}

		user, err := authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			ClearSessionCookie(c)
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			c.Abort()
			return
		}

		// 服务端已续期，cookie 的生存期同步刷新
		SetSessionCookie(c, token, int(authSvc.SessionTTL().Seconds()))

		c.Set("user", user)
		c.Next()
	}
}

// SetSessionCookie 写入会话 cookie
func SetSessionCookie(c *gin.Context, token string, maxAge int) {
	secure := gin.Mode() == gin.ReleaseMode
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", secure, true)
}

// ClearSessionCookie 清除会话 cookie
func ClearSessionCookie(c *gin.Context) {
	secure := gin.Mode() == gin.ReleaseMode
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}

// GetCurrentUser 从上下文获取当前用户
func GetCurrentUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	u, ok := v.(*model.User)
	return u, ok
}
