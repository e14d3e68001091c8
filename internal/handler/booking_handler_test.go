package handler_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"show-booking/internal/handler"
	"show-booking/internal/model"
	"show-booking/internal/service/mocks"
	"show-booking/internal/session"
	apperrors "show-booking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupBookingTestApp(t *testing.T, mockService *mocks.BookingServiceMock) *testApp {
	return newTestApp(t, func(sessions *session.Manager) routeRegistrar {
		return handler.NewBookingHandler(mockService, sessions)
	})
}

func testShow() *model.Show {
	return &model.Show{
		ID:              3,
		Name:            "Hamlet",
		Price:           500,
		Date:            "2099-01-01",
		Time:            "19:30",
		TicketAvailable: 30,
		VenueID:         1,
		Venue:           &model.Venue{ID: 1, Name: "Main Hall", Place: "Taipei", Capacity: 100},
	}
}

func TestBookTicketForm(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		app := setupBookingTestApp(t, mockService)
		cookie := app.login(t, 7, "alice", model.RoleUser)

		mockService.On("GetShow", mock.Anything, 3).Return(testShow(), nil).Once()

		w := app.do(createFormRequest(http.MethodGet, "/book_ticket/3", nil), cookie)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeView(t, w)
		assert.Equal(t, "book_ticket", body.View)
		require.NotNil(t, body.User)
		assert.Equal(t, "alice", body.User.Username)

		var show model.Show
		require.NoError(t, json.Unmarshal(body.Data["show"], &show))
		assert.Equal(t, "Hamlet", show.Name)
	})

	t.Run("Failed - ErrShowNotFound", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		app := setupBookingTestApp(t, mockService)
		cookie := app.login(t, 7, "alice", model.RoleUser)

		mockService.On("GetShow", mock.Anything, 99).Return(nil, apperrors.ErrShowNotFound).Once()

		w := app.do(createFormRequest(http.MethodGet, "/book_ticket/99", nil), cookie)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", decodeView(t, w).View)
	})

	t.Run("Failed - invalid id", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		app := setupBookingTestApp(t, mockService)
		cookie := app.login(t, 7, "alice", model.RoleUser)

		w := app.do(createFormRequest(http.MethodGet, "/book_ticket/abc", nil), cookie)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertNotCalled(t, "GetShow")
	})

	t.Run("Failed - not logged in", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		app := setupBookingTestApp(t, mockService)

		w := app.do(createFormRequest(http.MethodGet, "/book_ticket/3", nil), nil)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		mockService.AssertNotCalled(t, "GetShow")
	})
}

func TestBookTicket(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		app := setupBookingTestApp(t, mockService)
		cookie := app.login(t, 7, "alice", model.RoleUser)

		mockService.On("BookTicket", mock.Anything, 7, 3, 30).
			Return(&model.Ticket{ID: 11, NumTicket: 30, ShowID: 3, UserID: 7}, nil).Once()

		w := app.do(createFormRequest(http.MethodPost, "/book_ticket/3", url.Values{"num_ticket": {"30"}}), cookie)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/profile", w.Header().Get("Location"))
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrInsufficientTickets", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		app := setupBookingTestApp(t, mockService)
		cookie := app.login(t, 7, "alice", model.RoleUser)

		mockService.On("BookTicket", mock.Anything, 7, 3, 80).Return(nil, apperrors.ErrInsufficientTickets).Once()
		mockService.On("GetShow", mock.Anything, 3).Return(testShow(), nil).Once()

		w := app.do(createFormRequest(http.MethodPost, "/book_ticket/3", url.Values{"num_ticket": {"80"}}), cookie)

		assert.Equal(t, http.StatusConflict, w.Code)
		body := decodeView(t, w)
		assert.Equal(t, "book_ticket", body.View)
		assert.Equal(t, []string{"Not enough ticket available."}, body.Flashes)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrShowNotFound", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		app := setupBookingTestApp(t, mockService)
		cookie := app.login(t, 7, "alice", model.RoleUser)

		mockService.On("BookTicket", mock.Anything, 7, 99, 1).Return(nil, apperrors.ErrShowNotFound).Once()

		w := app.do(createFormRequest(http.MethodPost, "/book_ticket/99", url.Values{"num_ticket": {"1"}}), cookie)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	for _, value := range []string{"", "abc", "0", "-2", "3000000000"} {
		t.Run("Failed - invalid num_ticket "+value, func(t *testing.T) {
			mockService := mocks.NewBookingServiceMock()
			app := setupBookingTestApp(t, mockService)
			cookie := app.login(t, 7, "alice", model.RoleUser)

			mockService.On("GetShow", mock.Anything, 3).Return(testShow(), nil).Once()

			w := app.do(createFormRequest(http.MethodPost, "/book_ticket/3", url.Values{"num_ticket": {value}}), cookie)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeView(t, w)
			assert.Equal(t, "book_ticket", body.View)
			assert.Equal(t, []string{"Invalid data format. Please enter the number of tickets."}, body.Flashes)
			mockService.AssertNotCalled(t, "BookTicket")
		})
	}

	t.Run("Failed - ErrInternalServerError", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		app := setupBookingTestApp(t, mockService)
		cookie := app.login(t, 7, "alice", model.RoleUser)

		mockService.On("BookTicket", mock.Anything, 7, 3, 1).Return(nil, apperrors.ErrInternalServerError).Once()

		w := app.do(createFormRequest(http.MethodPost, "/book_ticket/3", url.Values{"num_ticket": {"1"}}), cookie)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestCancelTicket(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		app := setupBookingTestApp(t, mockService)
		cookie := app.login(t, 7, "alice", model.RoleUser)

		mockService.On("CancelTicket", mock.Anything, 7, 11).
			Return(&model.Ticket{ID: 11, NumTicket: 30, ShowID: 3, UserID: 7}, nil).Once()

		w := app.do(createFormRequest(http.MethodPost, "/cancel_ticket/11", nil), cookie)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/profile", w.Header().Get("Location"))
		assert.Equal(t, []string{"Ticket cancelled successfully."}, app.flashes(t, w, cookie))
	})

	t.Run("Failed - ErrTicketNotFound redirects silently", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		app := setupBookingTestApp(t, mockService)
		cookie := app.login(t, 7, "alice", model.RoleUser)

		mockService.On("CancelTicket", mock.Anything, 7, 11).Return(nil, apperrors.ErrTicketNotFound).Once()

		w := app.do(createFormRequest(http.MethodGet, "/cancel_ticket/11", nil), cookie)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/profile", w.Header().Get("Location"))
		assert.Empty(t, app.flashes(t, w, cookie))
	})

	t.Run("Failed - not logged in", func(t *testing.T) {
		mockService := mocks.NewBookingServiceMock()
		app := setupBookingTestApp(t, mockService)

		w := app.do(createFormRequest(http.MethodPost, "/cancel_ticket/11", nil), nil)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		mockService.AssertNotCalled(t, "CancelTicket")
	})
}
