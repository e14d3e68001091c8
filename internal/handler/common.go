package handler

import (
	"net/http"
	"strconv"

	"show-booking/internal/session"
	"show-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Guards 由 router 注入的權限檢查 middleware
type Guards struct {
	Login gin.HandlerFunc
	Admin gin.HandlerFunc
}

// View 回傳給樣板層的畫面資料
type View struct {
	Name    string           `json:"view"`
	Flashes []string         `json:"flashes"`
	User    *session.Session `json:"user,omitempty"`
	Data    gin.H            `json:"data,omitempty"`
}

func BindForm(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBind(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// responder 各 handler 共用的畫面輸出與 flash 工具
type responder struct {
	sessions *session.Manager
}

func (r responder) render(c *gin.Context, status int, name string, data gin.H) {
	view := View{
		Name:    name,
		Flashes: r.sessions.Flashes(c),
		Data:    data,
	}
	if sess := session.Current(c); sess.IsAuthenticated() {
		view.User = sess
	}
	c.JSON(status, view)
}

func (r responder) flash(c *gin.Context, message string) {
	r.sessions.Flash(c, message)
}

// redirect 一律使用 303，讓瀏覽器以 GET 前往下一頁
func (r responder) redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

func (r responder) notFound(c *gin.Context, message string) {
	r.render(c, http.StatusNotFound, "not_found", gin.H{"error": message})
}

func (r responder) internalError(c *gin.Context, err error, operation string) {
	logger.WithComponent("handler").Error("Unexpected error",
		zap.String("operation", operation),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	r.render(c, http.StatusInternalServerError, "error", gin.H{"error": "Internal server error"})
}

// paramID 解析路徑上的數字 ID，格式錯誤時視為找不到
func (r responder) paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		r.notFound(c, "Not found")
		return 0, false
	}
	return id, true
}

func currentUserID(c *gin.Context) int {
	if sess := session.Current(c); sess != nil {
		return sess.UserID
	}
	return 0
}
