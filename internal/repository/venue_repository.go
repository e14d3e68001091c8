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

type VenueRepository interface {
	Create(ctx context.Context, venue *model.Venue) (*model.Venue, error)
	List(ctx context.Context) ([]*model.Venue, error)
	FindByID(ctx context.Context, id int) (*model.Venue, error)
	FindByName(ctx context.Context, name string) (*model.Venue, error)
	Delete(ctx context.Context, id int) error

	// Transaction methods
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Venue, error)
	Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateVenueParams) (*model.Venue, error)
}

type VenueRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewVenueRepository(pool *pgxpool.Pool) VenueRepository {
	return &VenueRepositoryImpl{
		pool: pool,
	}
}

const venueColumns = `id, name, place, capacity, created_at, updated_at`

func scanVenue(row pgx.Row) (*model.Venue, error) {
	var venue model.Venue
	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.Place,
		&venue.Capacity,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVenueNotFound
		}
		return nil, err
	}
	return &venue, nil
}

func (r *VenueRepositoryImpl) Create(ctx context.Context, venue *model.Venue) (*model.Venue, error) {
	query := `
		INSERT INTO venues (name, place, capacity)
		VALUES ($1, $2, $3)
		RETURNING ` + venueColumns

	created, err := scanVenue(r.pool.QueryRow(ctx, query, venue.Name, venue.Place, venue.Capacity))
	if err != nil {
		if isUniqueViolation(err, constraintVenuesName) {
			return nil, apperrors.ErrVenueExists
		}
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	return created, nil
}

func (r *VenueRepositoryImpl) List(ctx context.Context) ([]*model.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]*model.Venue, 0)
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return venues, nil
}

func (r *VenueRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`
	return scanVenue(r.pool.QueryRow(ctx, query, id))
}

func (r *VenueRepositoryImpl) FindByName(ctx context.Context, name string) (*model.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE name = $1`
	return scanVenue(r.pool.QueryRow(ctx, query, name))
}

func (r *VenueRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1 FOR UPDATE`
	return scanVenue(tx.QueryRow(ctx, query, id))
}

func (r *VenueRepositoryImpl) Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateVenueParams) (*model.Venue, error) {
	query := `
		UPDATE venues
		SET name = $1, place = $2, capacity = $3, updated_at = $4
		WHERE id = $5
		RETURNING ` + venueColumns

	updated, err := scanVenue(tx.QueryRow(ctx, query,
		params.Name, params.Place, params.Capacity, time.Now().UTC(), id,
	))
	if err != nil {
		if isUniqueViolation(err, constraintVenuesName) {
			return nil, apperrors.ErrVenueExists
		}
		return nil, err
	}

	return updated, nil
}

func (r *VenueRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		// shows.venue_id 為 ON DELETE RESTRICT
		if isForeignKeyViolation(err) {
			return apperrors.ErrVenueInUse
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrVenueNotFound
	}

	return nil
}
