package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"show-booking/config"
	"show-booking/internal/handler"
	"show-booking/internal/middleware"
	"show-booking/internal/model"
	"show-booking/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const cookieName = "session_id"

type testApp struct {
	router *gin.Engine
	store  *session.MemoryStore
}

type routeRegistrar interface {
	RegisterRoutes(r *gin.Engine, guards handler.Guards)
}

// viewBody 對應 handler.View 的 JSON 輸出
type viewBody struct {
	View    string                     `json:"view"`
	Flashes []string                   `json:"flashes"`
	User    *session.Session           `json:"user"`
	Data    map[string]json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T, build func(sessions *session.Manager) routeRegistrar) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewMemoryStore(15 * time.Minute)
	sessions := session.NewManager(store, config.SessionConfig{CookieName: cookieName, TTL: 15 * time.Minute})

	r := gin.New()
	r.Use(middleware.LoadSession(sessions))
	build(sessions).RegisterRoutes(r, handler.Guards{
		Login: middleware.RequireLogin(),
		Admin: middleware.RequireAdmin(),
	})

	return &testApp{router: r, store: store}
}

// login 直接在 store 建立已登入的 session，回傳 cookie
func (a *testApp) login(t *testing.T, userID int, username string, role model.Role) *http.Cookie {
	t.Helper()
	sess, err := a.store.Create(context.Background(), &session.Session{
		UserID:   userID,
		Username: username,
		Role:     role,
	})
	require.NoError(t, err)
	return &http.Cookie{Name: cookieName, Value: sess.ID}
}

func (a *testApp) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// flashes 讀出該 session 尚未顯示的 flash 訊息
func (a *testApp) flashes(t *testing.T, w *httptest.ResponseRecorder, fallback *http.Cookie) []string {
	t.Helper()
	id := ""
	if fallback != nil {
		id = fallback.Value
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName && c.MaxAge >= 0 && c.Value != "" {
			id = c.Value
		}
	}
	require.NotEmpty(t, id, "response carries no session")

	flashes, err := a.store.PopFlashes(context.Background(), id)
	require.NoError(t, err)
	return flashes
}

func createFormRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) viewBody {
	t.Helper()
	var body viewBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
