package session

import (
	"time"

	"show-booking/internal/model"
)

// Session 伺服器端 session；UserID 為 0 表示尚未登入的訪客
type Session struct {
	ID        string     `json:"-"`
	UserID    int        `json:"user_id"`
	Username  string     `json:"username"`
	Role      model.Role `json:"role"`
	ExpiresAt time.Time  `json:"expires_at"`
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID > 0
}

func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.Role == model.RoleAdmin
}

// ForUser 建立綁定使用者的 session 內容（ID 由 Store 產生）
func ForUser(user *model.User) *Session {
	return &Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}
