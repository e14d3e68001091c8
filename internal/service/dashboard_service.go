package service

import (
	"context"

	"show-booking/internal/model"
	"show-booking/internal/repository"
)

// Dashboard 管理後台一次列出所有資料
type Dashboard struct {
	Users   []*model.User   `json:"users"`
	Venues  []*model.Venue  `json:"venues"`
	Shows   []*model.Show   `json:"shows"`
	Tickets []*model.Ticket `json:"tickets"`
}

type DashboardService interface {
	Overview(ctx context.Context) (*Dashboard, error)
}

type DashboardServiceImpl struct {
	userRepo   repository.UserRepository
	venueRepo  repository.VenueRepository
	showRepo   repository.ShowRepository
	ticketRepo repository.TicketRepository
}

func NewDashboardService(
	userRepo repository.UserRepository,
	venueRepo repository.VenueRepository,
	showRepo repository.ShowRepository,
	ticketRepo repository.TicketRepository,
) DashboardService {
	return &DashboardServiceImpl{
		userRepo:   userRepo,
		venueRepo:  venueRepo,
		showRepo:   showRepo,
		ticketRepo: ticketRepo,
	}
}

func (s *DashboardServiceImpl) Overview(ctx context.Context) (*Dashboard, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	shows, err := s.showRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	tickets, err := s.ticketRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Users:   users,
		Venues:  venues,
		Shows:   shows,
		Tickets: tickets,
	}, nil
}
