package handler

import (
	"net/http"

	"show-booking/internal/service"
	"show-booking/internal/session"

	"github.com/gin-gonic/gin"
)

// PageHandler 唯讀畫面：首頁、個人頁、管理後台
type PageHandler struct {
	responder
	shows     service.ShowService
	bookings  service.BookingService
	dashboard service.DashboardService
}

func NewPageHandler(
	shows service.ShowService,
	bookings service.BookingService,
	dashboard service.DashboardService,
	sessions *session.Manager,
) *PageHandler {
	return &PageHandler{
		responder: responder{sessions: sessions},
		shows:     shows,
		bookings:  bookings,
		dashboard: dashboard,
	}
}

func (h *PageHandler) RegisterRoutes(r *gin.Engine, guards Guards) {
	r.GET("/", h.Index)
	r.GET("/profile", guards.Login, h.Profile)
	r.GET("/dashboard", guards.Admin, h.Dashboard)
}

func (h *PageHandler) Index(c *gin.Context) {
	shows, err := h.shows.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "Index")
		return
	}
	h.render(c, http.StatusOK, "index", gin.H{"shows": shows})
}

// Profile 只列出目前使用者自己的訂票
func (h *PageHandler) Profile(c *gin.Context) {
	sess := session.Current(c)
	tickets, err := h.bookings.ListUserTickets(c.Request.Context(), sess.UserID)
	if err != nil {
		h.internalError(c, err, "Profile")
		return
	}
	h.render(c, http.StatusOK, "profile", gin.H{
		"tickets": tickets,
		"name":    sess.Username,
	})
}

func (h *PageHandler) Dashboard(c *gin.Context) {
	overview, err := h.dashboard.Overview(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "Dashboard")
		return
	}
	h.render(c, http.StatusOK, "dashboard", gin.H{
		"users":   overview.Users,
		"venues":  overview.Venues,
		"shows":   overview.Shows,
		"tickets": overview.Tickets,
	})
}
