package session

import (
	"errors"
	"net/http"

	"show-booking/config"
	apperrors "show-booking/pkg/app_errors"
	"show-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const contextKey = "session"

// Manager 負責 session cookie 與 gin.Context 之間的對應
type Manager struct {
	store  Store
	config config.SessionConfig
}

func NewManager(store Store, cfg config.SessionConfig) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = "session_id"
	}
	return &Manager{store: store, config: cfg}
}

// Current 回傳目前請求的 session，沒有時為 nil
func Current(c *gin.Context) *Session {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*Session)
	return sess
}

// Load 依 cookie 載入 session 並放入 context；過期或不存在時清除 cookie
func (m *Manager) Load(c *gin.Context) *Session {
	id, err := c.Cookie(m.config.CookieName)
	if err != nil || id == "" {
		return nil
	}

	sess, err := m.store.Get(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrSessionNotFound) {
			logger.WithComponent("session").Error("Failed to load session", zap.Error(err))
		}
		m.clearCookie(c)
		return nil
	}

	c.Set(contextKey, sess)
	return sess
}

// Start 輪替 session ID 並綁定新的身分，舊 session 尚未顯示的 flash 不保留
func (m *Manager) Start(c *gin.Context, sess *Session) (*Session, error) {
	ctx := c.Request.Context()
	if old := Current(c); old != nil {
		if err := m.store.Delete(ctx, old.ID); err != nil {
			return nil, err
		}
	}

	created, err := m.store.Create(ctx, sess)
	if err != nil {
		return nil, err
	}

	m.setCookie(c, created)
	c.Set(contextKey, created)
	return created, nil
}

// Destroy 刪除目前的 session 並清除 cookie
func (m *Manager) Destroy(c *gin.Context) error {
	sess := Current(c)
	m.clearCookie(c)
	if sess == nil {
		return nil
	}
	c.Set(contextKey, (*Session)(nil))
	return m.store.Delete(c.Request.Context(), sess.ID)
}

// Flash 留下一則訊息給下一個畫面；訪客沒有 session 時會建立匿名 session
func (m *Manager) Flash(c *gin.Context, message string) {
	log := logger.WithComponent("session")

	sess := Current(c)
	if sess == nil {
		var err error
		sess, err = m.Start(c, &Session{})
		if err != nil {
			log.Error("Failed to start anonymous session", zap.Error(err))
			return
		}
	}

	if err := m.store.AddFlash(c.Request.Context(), sess.ID, message); err != nil {
		log.Error("Failed to add flash message", zap.Error(err))
	}
}

// Flashes 取出並清空目前 session 的 flash 訊息
func (m *Manager) Flashes(c *gin.Context) []string {
	sess := Current(c)
	if sess == nil {
		return []string{}
	}

	flashes, err := m.store.PopFlashes(c.Request.Context(), sess.ID)
	if err != nil {
		logger.WithComponent("session").Error("Failed to pop flash messages", zap.Error(err))
		return []string{}
	}
	return flashes
}

func (m *Manager) setCookie(c *gin.Context, sess *Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.config.CookieName, sess.ID, int(m.config.TTL.Seconds()), "/", "", m.config.Secure, true)
}

func (m *Manager) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.config.CookieName, "", -1, "/", "", m.config.Secure, true)
}
