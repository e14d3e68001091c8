package service

import (
	"context"
	"errors"
	"fmt"

	"show-booking/internal/model"
	"show-booking/internal/repository"
	apperrors "show-booking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VenueService interface {
	List(ctx context.Context) ([]*model.Venue, error)
	GetByID(ctx context.Context, id int) (*model.Venue, error)
	Create(ctx context.Context, venue *model.Venue) (*model.Venue, error)
	// Update 覆寫場館資料，並依新容量重算所有場次的可售票數
	Update(ctx context.Context, id int, params model.UpdateVenueParams) (*model.Venue, error)
	Delete(ctx context.Context, id int) error
}

type VenueServiceImpl struct {
	pool     *pgxpool.Pool
	repo     repository.VenueRepository
	showRepo repository.ShowRepository
}

func NewVenueService(pool *pgxpool.Pool, repo repository.VenueRepository, showRepo repository.ShowRepository) VenueService {
	return &VenueServiceImpl{pool: pool, repo: repo, showRepo: showRepo}
}

func (s *VenueServiceImpl) List(ctx context.Context) ([]*model.Venue, error) {
	return s.repo.List(ctx)
}

func (s *VenueServiceImpl) GetByID(ctx context.Context, id int) (*model.Venue, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *VenueServiceImpl) Create(ctx context.Context, venue *model.Venue) (*model.Venue, error) {
	if venue.Capacity < 0 {
		return nil, apperrors.ErrInvalidInput
	}

	if _, err := s.repo.FindByName(ctx, venue.Name); err == nil {
		return nil, apperrors.ErrVenueExists
	} else if !errors.Is(err, apperrors.ErrVenueNotFound) {
		return nil, err
	}

	return s.repo.Create(ctx, venue)
}

func (s *VenueServiceImpl) Update(ctx context.Context, id int, params model.UpdateVenueParams) (*model.Venue, error) {
	if params.Capacity < 0 {
		return nil, apperrors.ErrInvalidInput
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 1. 鎖定場館，再鎖定其場次（順序與編輯場次一致）
	if _, err := s.repo.FindByIDWithLock(ctx, tx, id); err != nil {
		return nil, err
	}
	if err := s.showRepo.LockByVenueID(ctx, tx, id); err != nil {
		return nil, err
	}

	// 2. 更新場館
	venue, err := s.repo.Update(ctx, tx, id, params)
	if err != nil {
		return nil, err
	}

	// 3. 可售票數 = 新容量 - 已售出
	if err := s.showRepo.RebaseVenueShows(ctx, tx, id, params.Capacity); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit venue update: %w", err)
	}

	return venue, nil
}

func (s *VenueServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
