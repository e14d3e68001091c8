package handler

import (
	"errors"
	"fmt"
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
	msgInvalidData       = "Invalid data format"
	msgVenueExists       = "Venue already exist"
	msgVenueAdded        = "Venue added succesfully...."
	msgVenueNotFound     = "Venue not found"
	msgCapacityBelowSold = "Capacity is lower than tickets already sold"
)

type VenueHandler struct {
	responder
	service service.VenueService
}

func NewVenueHandler(service service.VenueService, sessions *session.Manager) *VenueHandler {
	return &VenueHandler{responder: responder{sessions: sessions}, service: service}
}

func (h *VenueHandler) RegisterRoutes(r *gin.Engine, guards Guards) {
	router := r.Group("/", guards.Admin)
	{
		router.GET("add_venue", h.AddVenueForm)
		router.POST("add_venue", h.AddVenue)
		router.GET("edit_venue/:id", h.EditVenueForm)
		router.POST("edit_venue/:id", h.EditVenue)
		router.Match([]string{http.MethodGet, http.MethodPost}, "delete_venue/:id", h.DeleteVenue)
	}
}

func (h *VenueHandler) AddVenueForm(c *gin.Context) {
	h.render(c, http.StatusOK, "add_venue", nil)
}

func (h *VenueHandler) AddVenue(c *gin.Context) {
	var form request.VenueForm
	if err := BindForm(c, &form); err != nil {
		return
	}
	if err := form.Validate(); err != nil {
		h.flash(c, msgInvalidData)
		h.render(c, http.StatusBadRequest, "add_venue", gin.H{"errors": err})
		return
	}

	venue, err := h.service.Create(c.Request.Context(), form.Venue())
	if err != nil {
		h.handleError(c, err, "AddVenue", nil)
		return
	}

	logger.WithComponent("handler").Info("Venue created", zap.Int("venue_id", venue.ID))
	h.flash(c, msgVenueAdded)
	h.redirect(c, "/dashboard")
}

func (h *VenueHandler) EditVenueForm(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	venue, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "EditVenueForm", nil)
		return
	}
	h.render(c, http.StatusOK, "edit_venue", gin.H{"venue": venue})
}

func (h *VenueHandler) EditVenue(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	var form request.VenueForm
	if err := BindForm(c, &form); err != nil {
		return
	}

	ctx := c.Request.Context()
	if err := form.Validate(); err != nil {
		venue, findErr := h.service.GetByID(ctx, id)
		if findErr != nil {
			h.handleError(c, findErr, "EditVenue", nil)
			return
		}
		h.flash(c, msgInvalidData)
		h.render(c, http.StatusBadRequest, "edit_venue", gin.H{"venue": venue, "errors": err})
		return
	}

	venue, err := h.service.Update(ctx, id, form.Params())
	if err != nil {
		h.handleError(c, err, "EditVenue", func() {
			current, findErr := h.service.GetByID(ctx, id)
			if findErr != nil {
				h.internalError(c, findErr, "EditVenue")
				return
			}
			h.render(c, http.StatusConflict, "edit_venue", gin.H{"venue": current})
		})
		return
	}

	h.flash(c, fmt.Sprintf("Venue with venue_id %d is successfully edited....", venue.ID))
	h.redirect(c, "/dashboard")
}

func (h *VenueHandler) DeleteVenue(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	err := h.service.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		logger.WithComponent("handler").Info("Venue deleted", zap.Int("venue_id", id))
		h.flash(c, fmt.Sprintf("Venue with venue_id %d is removed successfully.", id))
	case errors.Is(err, apperrors.ErrVenueNotFound):
		h.flash(c, msgVenueNotFound)
	case errors.Is(err, apperrors.ErrVenueInUse):
		h.flash(c, fmt.Sprintf("Venue with venue_id %d still hosts shows and cannot be removed.", id))
	default:
		h.internalError(c, err, "DeleteVenue")
		return
	}
	h.redirect(c, "/dashboard")
}

// handleError conflict 為業務規則衝突時重新顯示表單的方式，nil 時導回後台
func (h *VenueHandler) handleError(c *gin.Context, err error, operation string, conflict func()) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrVenueNotFound):
		log.Warn("Venue not found")
		h.notFound(c, msgVenueNotFound)
	case errors.Is(err, apperrors.ErrVenueExists), errors.Is(err, apperrors.ErrCapacityBelowSold):
		log.Warn("Venue conflict")
		if errors.Is(err, apperrors.ErrVenueExists) {
			h.flash(c, msgVenueExists)
		} else {
			h.flash(c, msgCapacityBelowSold)
		}
		if conflict == nil {
			h.redirect(c, "/dashboard")
			return
		}
		conflict()
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		h.flash(c, msgInvalidData)
		h.redirect(c, "/dashboard")
	default:
		h.internalError(c, err, operation)
	}
}
