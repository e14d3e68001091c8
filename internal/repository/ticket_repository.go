package repository

import (
	"context"
	"errors"
	"fmt"
	"show-booking/internal/model"
	apperrors "show-booking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	List(ctx context.Context) ([]*model.Ticket, error)
	FindByUserID(ctx context.Context, userID int) ([]*model.Ticket, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error)
	DeleteOwned(ctx context.Context, tx pgx.Tx, id int, userID int) (*model.Ticket, error)
}

type TicketRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &TicketRepositoryImpl{
		pool: pool,
	}
}

const ticketColumns = `id, num_ticket, show_name, place, user_id, show_id, created_at`

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	var ticket model.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.NumTicket,
		&ticket.ShowName,
		&ticket.Place,
		&ticket.UserID,
		&ticket.ShowID,
		&ticket.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *TicketRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error) {
	query := `
		INSERT INTO tickets (num_ticket, show_name, place, user_id, show_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + ticketColumns

	created, err := scanTicket(tx.QueryRow(ctx, query,
		ticket.NumTicket, ticket.ShowName, ticket.Place, ticket.UserID, ticket.ShowID,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	return created, nil
}

func (r *TicketRepositoryImpl) List(ctx context.Context) ([]*model.Ticket, error) {
	return r.list(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY id`)
}

func (r *TicketRepositoryImpl) FindByUserID(ctx context.Context, userID int) ([]*model.Ticket, error) {
	return r.list(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE user_id = $1 ORDER BY id`, userID)
}

// DeleteOwned 只刪除屬於 userID 的訂票，回傳被刪除的紀錄
func (r *TicketRepositoryImpl) DeleteOwned(ctx context.Context, tx pgx.Tx, id int, userID int) (*model.Ticket, error) {
	query := `
		DELETE FROM tickets
		WHERE id = $1 AND user_id = $2
		RETURNING ` + ticketColumns

	return scanTicket(tx.QueryRow(ctx, query, id, userID))
}

func (r *TicketRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]*model.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*model.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}
