package middleware

import (
	"show-booking/internal/service"
	"show-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SweepEndedShows 每個請求前刪除日期早於今天的場次；失敗只記錄，不中斷請求
func SweepEndedShows(maintenance service.MaintenanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		removed, err := maintenance.SweepEndedShows(c.Request.Context())
		if err != nil {
			logger.WithComponent("middleware").Error("Failed to sweep ended shows", zap.Error(err))
		} else if removed > 0 {
			logger.WithComponent("middleware").Info("Ended shows removed", zap.Int64("count", removed))
		}
		c.Next()
	}
}
