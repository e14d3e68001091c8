package repository

import (
	"context"
	"errors"
	"fmt"
	"show-booking/internal/model"
	apperrors "show-booking/pkg/app_errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ShowRepository interface {
	Create(ctx context.Context, show *model.Show) (*model.Show, error)
	List(ctx context.Context) ([]*model.Show, error)
	FindByID(ctx context.Context, id int) (*model.Show, error)
	Delete(ctx context.Context, id int) error
	// DeleteEndedBefore 刪除日期早於 date 的場次，回傳刪除筆數
	DeleteEndedBefore(ctx context.Context, date time.Time) (int64, error)

	// Transaction methods
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Show, error)
	LockByVenueID(ctx context.Context, tx pgx.Tx, venueID int) error
	Update(ctx context.Context, tx pgx.Tx, id int, params UpdateShowParams) (*model.Show, error)
	DecrementAvailable(ctx context.Context, tx pgx.Tx, id int, quantity int) (*model.Show, error)
	IncrementAvailable(ctx context.Context, tx pgx.Tx, id int, quantity int) error
	RebaseVenueShows(ctx context.Context, tx pgx.Tx, venueID int, capacity int) error
}

// UpdateShowParams 已解析好場館的場次更新內容
type UpdateShowParams struct {
	Name     string
	Price    int
	Date     string
	Time     string
	VenueID  int
	Capacity int
}

type ShowRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewShowRepository(pool *pgxpool.Pool) ShowRepository {
	return &ShowRepositoryImpl{
		pool: pool,
	}
}

const showSelect = `
	SELECT s.id, s.name, s.rating, s.price, to_char(s.date, 'YYYY-MM-DD'), s.time,
		s.ticket_available, s.venue_id, s.created_at, s.updated_at,
		v.id, v.name, v.place, v.capacity, v.created_at, v.updated_at
	FROM shows s
	JOIN venues v ON v.id = s.venue_id
`

func scanShow(row pgx.Row) (*model.Show, error) {
	var show model.Show
	var venue model.Venue
	err := row.Scan(
		&show.ID,
		&show.Name,
		&show.Rating,
		&show.Price,
		&show.Date,
		&show.Time,
		&show.TicketAvailable,
		&show.VenueID,
		&show.CreatedAt,
		&show.UpdatedAt,
		&venue.ID,
		&venue.Name,
		&venue.Place,
		&venue.Capacity,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrShowNotFound
		}
		return nil, err
	}
	show.Venue = &venue
	return &show, nil
}

func (r *ShowRepositoryImpl) Create(ctx context.Context, show *model.Show) (*model.Show, error) {
	query := `
		INSERT INTO shows (name, rating, price, date, time, ticket_available, venue_id)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		show.Name, show.Rating, show.Price, show.Date, show.Time,
		show.TicketAvailable, show.VenueID,
	).Scan(
		&show.ID,
		&show.CreatedAt,
		&show.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to create show: %w", err)
	}

	return show, nil
}

func (r *ShowRepositoryImpl) List(ctx context.Context) ([]*model.Show, error) {
	rows, err := r.pool.Query(ctx, showSelect+` ORDER BY s.date, s.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shows := make([]*model.Show, 0)
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		shows = append(shows, show)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shows, nil
}

func (r *ShowRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Show, error) {
	return scanShow(r.pool.QueryRow(ctx, showSelect+` WHERE s.id = $1`, id))
}

func (r *ShowRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Show, error) {
	return scanShow(tx.QueryRow(ctx, showSelect+` WHERE s.id = $1 FOR UPDATE OF s`, id))
}

// LockByVenueID 鎖住場館底下所有場次，避免重算可售票數時與訂票交錯
func (r *ShowRepositoryImpl) LockByVenueID(ctx context.Context, tx pgx.Tx, venueID int) error {
	_, err := tx.Exec(ctx, `SELECT id FROM shows WHERE venue_id = $1 FOR UPDATE`, venueID)
	return err
}

// Update 覆寫場次資料，可售票數重算為 capacity 減去已售出張數
func (r *ShowRepositoryImpl) Update(ctx context.Context, tx pgx.Tx, id int, params UpdateShowParams) (*model.Show, error) {
	query := `
		UPDATE shows
		SET name = $1, price = $2, date = $3::date, time = $4, venue_id = $5,
			ticket_available = $6 - COALESCE((SELECT SUM(t.num_ticket) FROM tickets t WHERE t.show_id = $7), 0),
			updated_at = $8
		WHERE id = $7
	`

	result, err := tx.Exec(ctx, query,
		params.Name, params.Price, params.Date, params.Time, params.VenueID,
		params.Capacity, id, time.Now().UTC(),
	)
	if err != nil {
		if isCheckViolation(err) {
			return nil, apperrors.ErrCapacityBelowSold
		}
		return nil, err
	}

	if result.RowsAffected() == 0 {
		return nil, apperrors.ErrShowNotFound
	}

	return scanShow(tx.QueryRow(ctx, showSelect+` WHERE s.id = $1`, id))
}

// DecrementAvailable 條件式扣減：只有剩餘票數足夠時才會更新
func (r *ShowRepositoryImpl) DecrementAvailable(ctx context.Context, tx pgx.Tx, id int, quantity int) (*model.Show, error) {
	if quantity <= 0 {
		return nil, apperrors.ErrInvalidInput
	}

	query := `
		UPDATE shows
		SET ticket_available = ticket_available - $1, updated_at = $2
		WHERE id = $3 AND ticket_available >= $1
	`

	result, err := tx.Exec(ctx, query, quantity, time.Now().UTC(), id)
	if err != nil {
		return nil, err
	}

	show, err := scanShow(tx.QueryRow(ctx, showSelect+` WHERE s.id = $1`, id))
	if err != nil {
		return nil, err
	}

	if result.RowsAffected() == 0 {
		return nil, apperrors.ErrInsufficientTickets
	}

	return show, nil
}

// IncrementAvailable 退票回補，上限為場館容量
func (r *ShowRepositoryImpl) IncrementAvailable(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	if quantity <= 0 {
		return apperrors.ErrInvalidInput
	}

	query := `
		UPDATE shows s
		SET ticket_available = LEAST(s.ticket_available + $1, v.capacity), updated_at = $2
		FROM venues v
		WHERE s.id = $3 AND v.id = s.venue_id
	`

	result, err := tx.Exec(ctx, query, quantity, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrShowNotFound
	}

	return nil
}

// RebaseVenueShows 場館容量變更後，重算該場館所有場次的可售票數
func (r *ShowRepositoryImpl) RebaseVenueShows(ctx context.Context, tx pgx.Tx, venueID int, capacity int) error {
	query := `
		UPDATE shows s
		SET ticket_available = $1 - COALESCE((SELECT SUM(t.num_ticket) FROM tickets t WHERE t.show_id = s.id), 0),
			updated_at = $2
		WHERE s.venue_id = $3
	`

	_, err := tx.Exec(ctx, query, capacity, time.Now().UTC(), venueID)
	if err != nil {
		if isCheckViolation(err) {
			return apperrors.ErrCapacityBelowSold
		}
		return err
	}

	return nil
}

func (r *ShowRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM shows WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrShowNotFound
	}

	return nil
}

func (r *ShowRepositoryImpl) DeleteEndedBefore(ctx context.Context, date time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM shows WHERE date < $1::date`, date.Format(model.DateLayout))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
