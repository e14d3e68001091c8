package service

import (
	"context"
	"fmt"

	"show-booking/internal/model"
	"show-booking/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CreateShowParams struct {
	Name      string
	VenueName string
	Rating    int
	Price     int
	Date      string
	Time      string
}

type ShowService interface {
	List(ctx context.Context) ([]*model.Show, error)
	GetByID(ctx context.Context, id int) (*model.Show, error)
	// Create 依場館名稱建立場次，可售票數為場館容量
	Create(ctx context.Context, params CreateShowParams) (*model.Show, error)
	// Update 場館找不到時回傳 ErrVenueNotFound；已售出的票數會保留
	Update(ctx context.Context, id int, params model.UpdateShowParams) (*model.Show, error)
	Delete(ctx context.Context, id int) error
}

type ShowServiceImpl struct {
	pool      *pgxpool.Pool
	repo      repository.ShowRepository
	venueRepo repository.VenueRepository
}

func NewShowService(pool *pgxpool.Pool, repo repository.ShowRepository, venueRepo repository.VenueRepository) ShowService {
	return &ShowServiceImpl{pool: pool, repo: repo, venueRepo: venueRepo}
}

func (s *ShowServiceImpl) List(ctx context.Context) ([]*model.Show, error) {
	return s.repo.List(ctx)
}

func (s *ShowServiceImpl) GetByID(ctx context.Context, id int) (*model.Show, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ShowServiceImpl) Create(ctx context.Context, params CreateShowParams) (*model.Show, error) {
	venue, err := s.venueRepo.FindByName(ctx, params.VenueName)
	if err != nil {
		return nil, err
	}

	show := &model.Show{
		Name:            params.Name,
		Rating:          params.Rating,
		Price:           params.Price,
		Date:            params.Date,
		Time:            params.Time,
		TicketAvailable: venue.Capacity,
		VenueID:         venue.ID,
	}

	created, err := s.repo.Create(ctx, show)
	if err != nil {
		return nil, err
	}
	created.Venue = venue
	return created, nil
}

func (s *ShowServiceImpl) Update(ctx context.Context, id int, params model.UpdateShowParams) (*model.Show, error) {
	venue, err := s.venueRepo.FindByName(ctx, params.VenueName)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 1. 先鎖場館再鎖場次，容量以鎖定後的值為準
	venue, err = s.venueRepo.FindByIDWithLock(ctx, tx, venue.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByIDWithLock(ctx, tx, id); err != nil {
		return nil, err
	}

	// 2. 更新場次，可售票數 = 容量 - 已售出
	show, err := s.repo.Update(ctx, tx, id, repository.UpdateShowParams{
		Name:     params.Name,
		Price:    params.Price,
		Date:     params.Date,
		Time:     params.Time,
		VenueID:  venue.ID,
		Capacity: venue.Capacity,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit show update: %w", err)
	}

	return show, nil
}

func (s *ShowServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
