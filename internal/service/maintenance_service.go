package service

import (
	"context"
	"time"

	"show-booking/internal/repository"
)

type MaintenanceService interface {
	// SweepEndedShows 刪除日期早於今天的場次；今天的場次不會被刪除
	SweepEndedShows(ctx context.Context) (int64, error)
}

type MaintenanceServiceImpl struct {
	showRepo repository.ShowRepository
	now      func() time.Time
}

// NewMaintenanceService now 為 nil 時使用 time.Now
func NewMaintenanceService(showRepo repository.ShowRepository, now func() time.Time) MaintenanceService {
	if now == nil {
		now = time.Now
	}
	return &MaintenanceServiceImpl{showRepo: showRepo, now: now}
}

func (s *MaintenanceServiceImpl) SweepEndedShows(ctx context.Context) (int64, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.showRepo.DeleteEndedBefore(ctx, today)
}
