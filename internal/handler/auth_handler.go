package handler

import (
	"errors"
	"net/http"

	"show-booking/internal/handler/request"
	"show-booking/internal/service"
	"show-booking/internal/session"
	apperrors "show-booking/pkg/app_errors"
	"show-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgBadCredentials = "Please check your login credential and try again"
	msgSignupInvalid  = "Invalid data format. Please try again."
	msgEmailExists    = "Email address already exists."
	msgUsernameExists = "Username already exists."
)

type AuthHandler struct {
	responder
	service service.AuthService
}

func NewAuthHandler(service service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{responder: responder{sessions: sessions}, service: service}
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine, guards Guards) {
	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.GET("/signup", h.SignupForm)
	r.POST("/signup", h.Signup)
	r.GET("/logout", guards.Login, h.Logout)
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form request.LoginForm
	if err := BindForm(c, &form); err != nil {
		return
	}
	if err := form.Validate(); err != nil {
		h.flash(c, msgBadCredentials)
		h.redirect(c, "/login")
		return
	}

	user, err := h.service.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			logger.WithComponent("handler").Info("Login rejected", zap.String("username", form.Username))
			h.flash(c, msgBadCredentials)
			h.redirect(c, "/login")
			return
		}
		h.internalError(c, err, "Login")
		return
	}

	if _, err := h.sessions.Start(c, session.ForUser(user)); err != nil {
		h.internalError(c, err, "Login")
		return
	}

	if user.IsAdmin() {
		h.redirect(c, "/dashboard")
		return
	}
	h.redirect(c, "/")
}

func (h *AuthHandler) SignupForm(c *gin.Context) {
	h.render(c, http.StatusOK, "signup", nil)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var form request.SignupForm
	if err := BindForm(c, &form); err != nil {
		return
	}
	if err := form.Validate(); err != nil {
		h.flash(c, msgSignupInvalid)
		h.render(c, http.StatusBadRequest, "signup", gin.H{"errors": err})
		return
	}

	_, err := h.service.Signup(c.Request.Context(), form.Params())
	switch {
	case err == nil:
		h.redirect(c, "/login")
	case errors.Is(err, apperrors.ErrEmailExists):
		h.flash(c, msgEmailExists)
		h.redirect(c, "/signup")
	case errors.Is(err, apperrors.ErrUsernameExists):
		h.flash(c, msgUsernameExists)
		h.redirect(c, "/signup")
	case errors.Is(err, apperrors.ErrInvalidInput):
		h.flash(c, msgSignupInvalid)
		h.render(c, http.StatusBadRequest, "signup", nil)
	default:
		h.internalError(c, err, "Signup")
	}
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c); err != nil {
		logger.WithComponent("handler").Warn("Failed to delete session", zap.Error(err))
	}
	h.redirect(c, "/")
}
