package service_test

import (
	"context"
	"testing"

	"show-booking/internal/model"
	"show-booking/internal/repository"
	"show-booking/internal/service"
	"show-booking/internal/testutil"
	apperrors "show-booking/pkg/app_errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShowService(pool *pgxpool.Pool) service.ShowService {
	return service.NewShowService(pool, repository.NewShowRepository(pool), repository.NewVenueRepository(pool))
}

func TestShowService_Create(t *testing.T) {
	ctx := context.Background()
	params := service.CreateShowParams{
		Name: "Hamlet", VenueName: "Main Hall", Rating: 5, Price: 500, Date: "2099-01-01", Time: "19:30",
	}

	t.Run("Success - availability starts at capacity", func(t *testing.T) {
		pool := setupTest(t)
		testutil.CreateVenue(t, pool, "Main Hall", 120)

		show, err := newShowService(pool).Create(ctx, params)

		require.NoError(t, err)
		assert.Equal(t, 120, show.TicketAvailable)
		assert.Equal(t, "Main Hall", show.Venue.Name)
	})

	t.Run("Failed - ErrVenueNotFound", func(t *testing.T) {
		pool := setupTest(t)

		_, err := newShowService(pool).Create(ctx, params)

		assert.ErrorIs(t, err, apperrors.ErrVenueNotFound)
		testutil.AssertRowCount(t, pool, "shows", 0)
	})
}

func TestShowService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - moves venue and keeps sold seats", func(t *testing.T) {
		pool := setupTest(t)
		mainHall := testutil.CreateVenue(t, pool, "Main Hall", 100)
		testutil.CreateVenue(t, pool, "Arena", 500)
		userID := testutil.CreateUser(t, pool, "alice", "alice@example.com", "user")
		showID := testutil.CreateShow(t, pool, "Hamlet", mainHall, "2099-01-01", 70)
		testutil.CreateTicket(t, pool, userID, showID, 30)

		show, err := newShowService(pool).Update(ctx, showID, model.UpdateShowParams{
			Name: "Hamlet", Price: 800, Date: "2099-03-01", Time: "18:00", VenueName: "Arena",
		})

		require.NoError(t, err)
		assert.Equal(t, 800, show.Price)
		assert.Equal(t, "Arena", show.Venue.Name)
		assert.Equal(t, 470, show.TicketAvailable)
		assert.Equal(t, 5, show.Rating)
	})

	t.Run("Failed - ErrVenueNotFound keeps the old values", func(t *testing.T) {
		pool := setupTest(t)
		showID := testutil.CreateShow(t, pool, "Hamlet", testutil.CreateVenue(t, pool, "Main Hall", 100), "2099-01-01", 100)

		_, err := newShowService(pool).Update(ctx, showID, model.UpdateShowParams{
			Name: "Renamed", Price: 1, Date: "2099-01-01", Time: "t", VenueName: "Nowhere",
		})

		assert.ErrorIs(t, err, apperrors.ErrVenueNotFound)
		show, err := repository.NewShowRepository(pool).FindByID(ctx, showID)
		require.NoError(t, err)
		assert.Equal(t, "Hamlet", show.Name)
	})

	t.Run("Failed - ErrShowNotFound", func(t *testing.T) {
		pool := setupTest(t)
		testutil.CreateVenue(t, pool, "Main Hall", 100)

		_, err := newShowService(pool).Update(ctx, 99999, model.UpdateShowParams{
			Name: "x", Date: "2099-01-01", Time: "t", VenueName: "Main Hall",
		})

		assert.ErrorIs(t, err, apperrors.ErrShowNotFound)
	})
}

func TestShowService_Delete(t *testing.T) {
	ctx := context.Background()
	pool := setupTest(t)
	showService := newShowService(pool)
	showID := testutil.CreateShow(t, pool, "Hamlet", testutil.CreateVenue(t, pool, "Main Hall", 100), "2099-01-01", 100)

	require.NoError(t, showService.Delete(ctx, showID))
	assert.ErrorIs(t, showService.Delete(ctx, showID), apperrors.ErrShowNotFound)
}
