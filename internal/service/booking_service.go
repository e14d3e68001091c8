package service

import (
	"context"
	"fmt"

	"show-booking/internal/model"
	"show-booking/internal/repository"
	apperrors "show-booking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingService interface {
	GetShow(ctx context.Context, showID int) (*model.Show, error)
	// BookTicket 在同一個 transaction 內扣減可售票數並建立訂票紀錄
	BookTicket(ctx context.Context, userID, showID, quantity int) (*model.Ticket, error)
	// CancelTicket 刪除使用者自己的訂票並回補可售票數
	CancelTicket(ctx context.Context, userID, ticketID int) (*model.Ticket, error)
	ListUserTickets(ctx context.Context, userID int) ([]*model.Ticket, error)
}

type BookingServiceImpl struct {
	pool             *pgxpool.Pool
	showRepository   repository.ShowRepository
	ticketRepository repository.TicketRepository
}

func NewBookingService(
	pool *pgxpool.Pool,
	showRepository repository.ShowRepository,
	ticketRepository repository.TicketRepository,
) BookingService {
	return &BookingServiceImpl{
		pool:             pool,
		showRepository:   showRepository,
		ticketRepository: ticketRepository,
	}
}

func (s *BookingServiceImpl) GetShow(ctx context.Context, showID int) (*model.Show, error) {
	return s.showRepository.FindByID(ctx, showID)
}

func (s *BookingServiceImpl) BookTicket(ctx context.Context, userID, showID, quantity int) (*model.Ticket, error) {
	if quantity <= 0 {
		return nil, apperrors.ErrInvalidInput
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 1. 條件式扣減，票數不足時不會有任何變更
	show, err := s.showRepository.DecrementAvailable(ctx, tx, showID, quantity)
	if err != nil {
		return nil, err
	}

	// 2. 建立訂票紀錄（保存當下的場次名稱與地點）
	ticket, err := s.ticketRepository.Create(ctx, tx, &model.Ticket{
		NumTicket: quantity,
		ShowName:  show.Name,
		Place:     show.Venue.Place,
		UserID:    userID,
		ShowID:    show.ID,
	})
	if err != nil {
		return nil, err
	}

	// 3. commit transaction
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit booking: %w", err)
	}

	return ticket, nil
}

func (s *BookingServiceImpl) CancelTicket(ctx context.Context, userID, ticketID int) (*model.Ticket, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 1. 刪除訂票；重複取消或非本人的訂票會得到 ErrTicketNotFound
	ticket, err := s.ticketRepository.DeleteOwned(ctx, tx, ticketID, userID)
	if err != nil {
		return nil, err
	}

	// 2. 回補可售票數
	if err := s.showRepository.IncrementAvailable(ctx, tx, ticket.ShowID, ticket.NumTicket); err != nil {
		return nil, err
	}

	// 3. commit transaction
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cancellation: %w", err)
	}

	return ticket, nil
}

func (s *BookingServiceImpl) ListUserTickets(ctx context.Context, userID int) ([]*model.Ticket, error) {
	return s.ticketRepository.FindByUserID(ctx, userID)
}
