package handler

import (
	"errors"
	"net/http"

	"show-booking/internal/handler/request"
	"show-booking/internal/service"
	"show-booking/internal/session"
	apperrors "show-booking/pkg/app_errors"
	"show-booking/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgNotEnoughTickets = "Not enough ticket available."
	msgBookingInvalid   = "Invalid data format. Please enter the number of tickets."
	msgTicketCancelled  = "Ticket cancelled successfully."
)

type BookingHandler struct {
	responder
	service service.BookingService
}

func NewBookingHandler(service service.BookingService, sessions *session.Manager) *BookingHandler {
	return &BookingHandler{responder: responder{sessions: sessions}, service: service}
}

func (h *BookingHandler) RegisterRoutes(r *gin.Engine, guards Guards) {
	r.GET("/book_ticket/:show_id", guards.Login, h.BookTicketForm)
	r.POST("/book_ticket/:show_id", guards.Login, h.BookTicket)
	r.Match([]string{http.MethodGet, http.MethodPost}, "/cancel_ticket/:ticket_id", guards.Login, h.CancelTicket)
}

func (h *BookingHandler) BookTicketForm(c *gin.Context) {
	showID, ok := h.paramID(c, "show_id")
	if !ok {
		return
	}
	h.renderBookingForm(c, http.StatusOK, showID)
}

func (h *BookingHandler) BookTicket(c *gin.Context) {
	showID, ok := h.paramID(c, "show_id")
	if !ok {
		return
	}

	var form request.BookTicketForm
	if err := BindForm(c, &form); err != nil {
		return
	}
	if err := form.Validate(); err != nil {
		h.flash(c, msgBookingInvalid)
		h.renderBookingForm(c, http.StatusBadRequest, showID)
		return
	}

	userID := currentUserID(c)
	ticket, err := h.service.BookTicket(c.Request.Context(), userID, showID, form.Quantity())
	if err != nil {
		h.handleError(c, err, "BookTicket", showID)
		return
	}

	logger.WithComponent("handler").Info("Ticket booked",
		zap.Int("ticket_id", ticket.ID),
		zap.Int("show_id", showID),
		zap.Int("user_id", userID),
		zap.Int("num_ticket", ticket.NumTicket),
	)
	h.redirect(c, "/profile")
}

func (h *BookingHandler) CancelTicket(c *gin.Context) {
	ticketID, ok := h.paramID(c, "ticket_id")
	if !ok {
		return
	}

	_, err := h.service.CancelTicket(c.Request.Context(), currentUserID(c), ticketID)
	if err != nil {
		// 找不到(或不是自己的)訂票：直接回個人頁
		if errors.Is(err, apperrors.ErrTicketNotFound) {
			h.redirect(c, "/profile")
			return
		}
		h.handleError(c, err, "CancelTicket", 0)
		return
	}

	h.flash(c, msgTicketCancelled)
	h.redirect(c, "/profile")
}

func (h *BookingHandler) renderBookingForm(c *gin.Context, status int, showID int) {
	show, err := h.service.GetShow(c.Request.Context(), showID)
	if err != nil {
		h.handleError(c, err, "GetShow", showID)
		return
	}
	h.render(c, status, "book_ticket", gin.H{"show": show})
}

func (h *BookingHandler) handleError(c *gin.Context, err error, operation string, showID int) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInsufficientTickets):
		log.Warn("Insufficient tickets")
		h.flash(c, msgNotEnoughTickets)
		h.renderBookingForm(c, http.StatusConflict, showID)
	case errors.Is(err, apperrors.ErrShowNotFound):
		log.Warn("Show not found")
		h.notFound(c, "Show not found")
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		h.flash(c, msgBookingInvalid)
		h.renderBookingForm(c, http.StatusBadRequest, showID)
	default:
		h.internalError(c, err, operation)
	}
}
