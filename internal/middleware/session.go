package middleware

import (
	"net/http"

	"show-booking/internal/session"
	"show-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoadSession 依 cookie 把 session 放進 gin.Context，之後以 session.Current 讀取
func LoadSession(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		manager.Load(c)
		c.Next()
	}
}

// RequireLogin 未登入者導回登入頁
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.Current(c).IsAuthenticated() {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin 未登入導回登入頁，已登入但非管理員回 403
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.Current(c)
		if !sess.IsAuthenticated() {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		if !sess.IsAdmin() {
			logger.WithComponent("middleware").Warn("Admin route rejected",
				zap.Int("user_id", sess.UserID),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"view":    "forbidden",
				"flashes": []string{},
			})
			return
		}
		c.Next()
	}
}
