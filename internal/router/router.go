package router

import (
	"show-booking/internal/handler"
	"show-booking/internal/middleware"
	"show-booking/internal/service"
	"show-booking/internal/session"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

// Services 組裝路由所需的所有服務
type Services struct {
	Auth        service.AuthService
	Booking     service.BookingService
	Venue       service.VenueService
	Show        service.ShowService
	Dashboard   service.DashboardService
	Maintenance service.MaintenanceService
}

type routeRegistrar interface {
	RegisterRoutes(r *gin.Engine, guards handler.Guards)
}

// New 建立 gin engine；middleware 順序：request id → 記錄 → recovery → 清除過期場次 → 載入 session
func New(services Services, sessions *session.Manager, checks map[string]handler.HealthCheck) *gin.Engine {
	r := gin.New()
	r.Use(
		requestid.New(),
		middleware.RequestLogger(),
		gin.Recovery(),
	)

	// 健康檢查不觸發清除與 session
	handler.NewHealthHandler(checks).RegisterRoutes(r, handler.Guards{})

	r.Use(
		middleware.SweepEndedShows(services.Maintenance),
		middleware.LoadSession(sessions),
	)

	guards := handler.Guards{
		Login: middleware.RequireLogin(),
		Admin: middleware.RequireAdmin(),
	}

	handlers := []routeRegistrar{
		handler.NewAuthHandler(services.Auth, sessions),
		handler.NewPageHandler(services.Show, services.Booking, services.Dashboard, sessions),
		handler.NewBookingHandler(services.Booking, sessions),
		handler.NewVenueHandler(services.Venue, sessions),
		handler.NewShowHandler(services.Show, services.Venue, sessions),
	}
	for _, h := range handlers {
		h.RegisterRoutes(r, guards)
	}

	return r
}
