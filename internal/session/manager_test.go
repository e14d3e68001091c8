package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"show-booking/config"
	"show-booking/internal/model"
	"show-booking/internal/session"
	apperrors "show-booking/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(cookie *http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		c.Request.AddCookie(cookie)
	}
	return c, w
}

func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestManager_StartAndLoad(t *testing.T) {
	store := session.NewMemoryStore(15 * time.Minute)
	manager := session.NewManager(store, config.SessionConfig{CookieName: "sid", TTL: 15 * time.Minute})

	c, w := newTestContext(nil)
	started, err := manager.Start(c, &session.Session{UserID: 7, Username: "alice", Role: model.RoleUser})
	require.NoError(t, err)
	assert.Same(t, started, session.Current(c))

	cookie := responseCookie(w, "sid")
	require.NotNil(t, cookie)
	assert.Equal(t, started.ID, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 900, cookie.MaxAge)

	next, _ := newTestContext(&http.Cookie{Name: "sid", Value: cookie.Value})
	loaded := manager.Load(next)
	require.NotNil(t, loaded)
	assert.Equal(t, 7, loaded.UserID)
	assert.True(t, session.Current(next).IsAuthenticated())
}

func TestManager_LoadUnknownClearsCookie(t *testing.T) {
	manager := session.NewManager(session.NewMemoryStore(time.Minute), config.SessionConfig{TTL: time.Minute})

	c, w := newTestContext(&http.Cookie{Name: "session_id", Value: "missing"})
	assert.Nil(t, manager.Load(c))
	assert.Nil(t, session.Current(c))

	cookie := responseCookie(w, "session_id")
	require.NotNil(t, cookie)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestManager_FlashCreatesAnonymousSession(t *testing.T) {
	store := session.NewMemoryStore(time.Minute)
	manager := session.NewManager(store, config.SessionConfig{TTL: time.Minute})

	c, w := newTestContext(nil)
	manager.Flash(c, "hello")

	sess := session.Current(c)
	require.NotNil(t, sess)
	assert.False(t, sess.IsAuthenticated())
	require.NotNil(t, responseCookie(w, "session_id"))

	assert.Equal(t, []string{"hello"}, manager.Flashes(c))
	assert.Empty(t, manager.Flashes(c))
}

func TestManager_StartRotatesAndDestroy(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(time.Minute)
	manager := session.NewManager(store, config.SessionConfig{TTL: time.Minute})

	anon, err := store.Create(ctx, &session.Session{})
	require.NoError(t, err)

	c, _ := newTestContext(&http.Cookie{Name: "session_id", Value: anon.ID})
	manager.Load(c)
	logged, err := manager.Start(c, &session.Session{UserID: 3, Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.NotEqual(t, anon.ID, logged.ID)

	_, err = store.Get(ctx, anon.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	require.NoError(t, manager.Destroy(c))
	assert.Nil(t, session.Current(c))
	_, err = store.Get(ctx, logged.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}
