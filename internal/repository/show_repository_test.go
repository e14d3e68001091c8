package repository_test

import (
	"context"
	"testing"
	"time"

	"show-booking/internal/model"
	"show-booking/internal/repository"
	"show-booking/internal/testutil"
	apperrors "show-booking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		pool := setupTest(t)
		repo := repository.NewShowRepository(pool)
		venueID := testutil.CreateVenue(t, pool, "Main Hall", 100)

		created, err := repo.Create(ctx, &model.Show{
			Name: "Hamlet", Rating: 5, Price: 500, Date: "2099-01-01", Time: "19:30",
			TicketAvailable: 100, VenueID: venueID,
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "2099-01-01", found.Date)
		assert.Equal(t, 100, found.TicketAvailable)
		require.NotNil(t, found.Venue)
		assert.Equal(t, "Main Hall", found.Venue.Name)
	})

	t.Run("Failed - unknown venue", func(t *testing.T) {
		repo := repository.NewShowRepository(setupTest(t))

		_, err := repo.Create(ctx, &model.Show{Name: "Hamlet", Date: "2099-01-01", Time: "19:30", VenueID: 99999})

		assert.ErrorIs(t, err, apperrors.ErrVenueNotFound)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := repository.NewShowRepository(setupTest(t))

		_, err := repo.FindByID(ctx, 99999)

		assert.ErrorIs(t, err, apperrors.ErrShowNotFound)
	})
}

func TestShowRepository_DecrementAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		pool := setupTest(t)
		repo := repository.NewShowRepository(pool)
		showID := testutil.CreateShow(t, pool, "Hamlet", testutil.CreateVenue(t, pool, "Main Hall", 100), "2099-01-01", 100)
		tx := setupTestWithTransaction(t)

		show, err := repo.DecrementAvailable(ctx, tx, showID, 30)

		require.NoError(t, err)
		assert.Equal(t, 70, show.TicketAvailable)
	})

	t.Run("Failed - ErrInsufficientTickets", func(t *testing.T) {
		pool := setupTest(t)
		repo := repository.NewShowRepository(pool)
		showID := testutil.CreateShow(t, pool, "Hamlet", testutil.CreateVenue(t, pool, "Main Hall", 100), "2099-01-01", 20)
		tx := setupTestWithTransaction(t)

		_, err := repo.DecrementAvailable(ctx, tx, showID, 21)

		assert.ErrorIs(t, err, apperrors.ErrInsufficientTickets)
	})

	t.Run("Failed - ErrShowNotFound", func(t *testing.T) {
		pool := setupTest(t)
		repo := repository.NewShowRepository(pool)
		tx := setupTestWithTransaction(t)

		_, err := repo.DecrementAvailable(ctx, tx, 99999, 1)

		assert.ErrorIs(t, err, apperrors.ErrShowNotFound)
	})

	t.Run("Failed - non-positive quantity", func(t *testing.T) {
		pool := setupTest(t)
		repo := repository.NewShowRepository(pool)
		tx := setupTestWithTransaction(t)

		_, err := repo.DecrementAvailable(ctx, tx, 1, 0)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestShowRepository_IncrementAvailable_CappedByCapacity(t *testing.T) {
	ctx := context.Background()
	pool := setupTest(t)
	repo := repository.NewShowRepository(pool)
	showID := testutil.CreateShow(t, pool, "Hamlet", testutil.CreateVenue(t, pool, "Main Hall", 100), "2099-01-01", 95)

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.IncrementAvailable(ctx, tx, showID, 10))
	require.NoError(t, tx.Commit(ctx))

	assert.Equal(t, 100, testutil.Available(t, pool, showID))
}

func TestShowRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - keeps sold seats", func(t *testing.T) {
		pool := setupTest(t)
		repo := repository.NewShowRepository(pool)
		venueID := testutil.CreateVenue(t, pool, "Main Hall", 100)
		userID := testutil.CreateUser(t, pool, "alice", "alice@example.com", "user")
		showID := testutil.CreateShow(t, pool, "Hamlet", venueID, "2099-01-01", 70)
		testutil.CreateTicket(t, pool, userID, showID, 30)
		tx := setupTestWithTransaction(t)

		show, err := repo.Update(ctx, tx, showID, repository.UpdateShowParams{
			Name: "Macbeth", Price: 600, Date: "2099-02-01", Time: "20:00", VenueID: venueID, Capacity: 100,
		})

		require.NoError(t, err)
		assert.Equal(t, "Macbeth", show.Name)
		assert.Equal(t, "2099-02-01", show.Date)
		assert.Equal(t, 70, show.TicketAvailable)
	})

	t.Run("Failed - ErrCapacityBelowSold", func(t *testing.T) {
		pool := setupTest(t)
		repo := repository.NewShowRepository(pool)
		venueID := testutil.CreateVenue(t, pool, "Main Hall", 100)
		smallID := testutil.CreateVenue(t, pool, "Small Hall", 10)
		userID := testutil.CreateUser(t, pool, "alice", "alice@example.com", "user")
		showID := testutil.CreateShow(t, pool, "Hamlet", venueID, "2099-01-01", 70)
		testutil.CreateTicket(t, pool, userID, showID, 30)
		tx := setupTestWithTransaction(t)

		_, err := repo.Update(ctx, tx, showID, repository.UpdateShowParams{
			Name: "Hamlet", Price: 500, Date: "2099-01-01", Time: "19:30", VenueID: smallID, Capacity: 10,
		})

		assert.ErrorIs(t, err, apperrors.ErrCapacityBelowSold)
	})

	t.Run("NotFound", func(t *testing.T) {
		pool := setupTest(t)
		repo := repository.NewShowRepository(pool)
		venueID := testutil.CreateVenue(t, pool, "Main Hall", 100)
		tx := setupTestWithTransaction(t)

		_, err := repo.Update(ctx, tx, 99999, repository.UpdateShowParams{
			Name: "x", Date: "2099-01-01", Time: "t", VenueID: venueID, Capacity: 100,
		})

		assert.ErrorIs(t, err, apperrors.ErrShowNotFound)
	})
}

func TestShowRepository_DeleteEndedBefore(t *testing.T) {
	pool := setupTest(t)
	repo := repository.NewShowRepository(pool)
	venueID := testutil.CreateVenue(t, pool, "Main Hall", 100)

	today := time.Date(2030, 6, 15, 0, 0, 0, 0, time.Local)
	testutil.CreateShow(t, pool, "Yesterday", venueID, "2030-06-14", 100)
	todayID := testutil.CreateShow(t, pool, "Today", venueID, "2030-06-15", 100)
	tomorrowID := testutil.CreateShow(t, pool, "Tomorrow", venueID, "2030-06-16", 100)

	removed, err := repo.DeleteEndedBefore(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	shows, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, shows, 2)
	assert.Equal(t, todayID, shows[0].ID)
	assert.Equal(t, tomorrowID, shows[1].ID)
}

func TestShowRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - tickets cascade", func(t *testing.T) {
		pool := setupTest(t)
		repo := repository.NewShowRepository(pool)
		userID := testutil.CreateUser(t, pool, "alice", "alice@example.com", "user")
		showID := testutil.CreateShow(t, pool, "Hamlet", testutil.CreateVenue(t, pool, "Main Hall", 100), "2099-01-01", 90)
		testutil.CreateTicket(t, pool, userID, showID, 10)

		require.NoError(t, repo.Delete(ctx, showID))
		testutil.AssertRowCount(t, pool, "shows", 0)
		testutil.AssertRowCount(t, pool, "tickets", 0)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := repository.NewShowRepository(setupTest(t))

		assert.ErrorIs(t, repo.Delete(ctx, 99999), apperrors.ErrShowNotFound)
	})
}
