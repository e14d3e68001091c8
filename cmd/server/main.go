package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"show-booking/config"
	"show-booking/internal/database"
	"show-booking/internal/handler"
	"show-booking/internal/repository"
	"show-booking/internal/router"
	"show-booking/internal/service"
	"show-booking/internal/session"
	"show-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	addr := pflag.String("addr", cfg.Server.Addr, "HTTP listen address")
	migrate := pflag.Bool("migrate", true, "apply the database schema before serving")
	pflag.Parse()

	log := logger.WithComponent("server")
	gin.SetMode(cfg.Server.GinMode)

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	if *migrate {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := database.Migrate(ctx, pool)
		cancel()
		if err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	checks := map[string]handler.HealthCheck{
		"postgres": pool.Ping,
	}

	var store session.Store
	switch cfg.Session.Backend {
	case "memory":
		store = session.NewMemoryStore(cfg.Session.TTL)
		log.Warn("Using in-memory session store; sessions are lost on restart")
	default:
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		defer rdb.Close()

		store = session.NewRedisStore(rdb, cfg.Session.TTL)
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	sessions := session.NewManager(store, cfg.Session)

	userRepo := repository.NewUserRepository(pool)
	venueRepo := repository.NewVenueRepository(pool)
	showRepo := repository.NewShowRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	authService := service.NewAuthService(userRepo, cfg.Auth.BcryptCost)
	if cfg.Auth.AdminUsername != "" && cfg.Auth.AdminEmail != "" && cfg.Auth.AdminPassword != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		admin, err := authService.EnsureAdmin(ctx, service.SignupParams{
			Username: cfg.Auth.AdminUsername,
			Email:    cfg.Auth.AdminEmail,
			Password: cfg.Auth.AdminPassword,
		})
		cancel()
		if err != nil {
			log.Fatal("Failed to ensure admin user", zap.Error(err))
		}
		log.Info("Admin user ready", zap.Int("user_id", admin.ID), zap.String("username", admin.Username))
	}

	engine := router.New(router.Services{
		Auth:        authService,
		Booking:     service.NewBookingService(pool, showRepo, ticketRepo),
		Venue:       service.NewVenueService(pool, venueRepo, showRepo),
		Show:        service.NewShowService(pool, showRepo, venueRepo),
		Dashboard:   service.NewDashboardService(userRepo, venueRepo, showRepo, ticketRepo),
		Maintenance: service.NewMaintenanceService(showRepo, time.Now),
	}, sessions, checks)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", *addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server stopped unexpectedly", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	_ = logger.L.Sync()
}
