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
	msgShowInvalid  = "Invalid data format. Please enter data in required format"
	msgShowCreated  = "Show successfully created..."
	msgShowNotFound = "Show not found"
)

type ShowHandler struct {
	responder
	service service.ShowService
	venues  service.VenueService
}

func NewShowHandler(service service.ShowService, venues service.VenueService, sessions *session.Manager) *ShowHandler {
	return &ShowHandler{responder: responder{sessions: sessions}, service: service, venues: venues}
}

func (h *ShowHandler) RegisterRoutes(r *gin.Engine, guards Guards) {
	router := r.Group("/", guards.Admin)
	{
		router.GET("add_show", h.AddShowForm)
		router.POST("add_show", h.AddShow)
		router.GET("edit_show/:id", h.EditShowForm)
		router.POST("edit_show/:id", h.EditShow)
		router.Match([]string{http.MethodGet, http.MethodPost}, "delete_show/:id", h.DeleteShow)
	}
}

func (h *ShowHandler) AddShowForm(c *gin.Context) {
	h.renderAddForm(c, http.StatusOK, nil)
}

func (h *ShowHandler) AddShow(c *gin.Context) {
	var form request.ShowForm
	if err := BindForm(c, &form); err != nil {
		return
	}
	if err := form.Validate(); err != nil {
		h.flash(c, msgShowInvalid)
		h.renderAddForm(c, http.StatusBadRequest, err)
		return
	}

	show, err := h.service.Create(c.Request.Context(), form.Params())
	if err != nil {
		if errors.Is(err, apperrors.ErrVenueNotFound) {
			logger.WithComponent("handler").Warn("Venue not found",
				zap.String("operation", "AddShow"),
				zap.String("venue_name", form.VenueName),
			)
			h.flash(c, msgShowInvalid)
			h.renderAddForm(c, http.StatusBadRequest, nil)
			return
		}
		h.internalError(c, err, "AddShow")
		return
	}

	logger.WithComponent("handler").Info("Show created",
		zap.Int("show_id", show.ID),
		zap.Int("venue_id", show.VenueID),
	)
	h.flash(c, msgShowCreated)
	h.redirect(c, "/dashboard")
}

func (h *ShowHandler) EditShowForm(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	h.renderEditForm(c, http.StatusOK, id, nil)
}

func (h *ShowHandler) EditShow(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	var form request.EditShowForm
	if err := BindForm(c, &form); err != nil {
		return
	}
	if err := form.Validate(); err != nil {
		h.flash(c, msgShowInvalid)
		h.renderEditForm(c, http.StatusBadRequest, id, err)
		return
	}

	show, err := h.service.Update(c.Request.Context(), id, form.Params())
	if err != nil {
		log := logger.WithComponent("handler").With(zap.String("operation", "EditShow"), zap.Error(err))
		switch {
		case errors.Is(err, apperrors.ErrShowNotFound):
			log.Warn("Show not found")
			h.notFound(c, msgShowNotFound)
		case errors.Is(err, apperrors.ErrVenueNotFound):
			log.Warn("Venue not found")
			h.flash(c, msgShowInvalid)
			h.renderEditForm(c, http.StatusBadRequest, id, nil)
		case errors.Is(err, apperrors.ErrCapacityBelowSold):
			log.Warn("Capacity below sold")
			h.flash(c, msgCapacityBelowSold)
			h.renderEditForm(c, http.StatusConflict, id, nil)
		default:
			h.internalError(c, err, "EditShow")
		}
		return
	}

	h.flash(c, fmt.Sprintf("Show with show_id %d is successfully edited.", show.ID))
	h.redirect(c, "/dashboard")
}

func (h *ShowHandler) DeleteShow(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	err := h.service.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		logger.WithComponent("handler").Info("Show deleted", zap.Int("show_id", id))
		h.flash(c, fmt.Sprintf("show with the show_id %d is removed successfully.", id))
	case errors.Is(err, apperrors.ErrShowNotFound):
		h.flash(c, msgShowNotFound)
	default:
		h.internalError(c, err, "DeleteShow")
		return
	}
	h.redirect(c, "/dashboard")
}

func (h *ShowHandler) renderAddForm(c *gin.Context, status int, validationErr error) {
	venues, err := h.venues.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "ListVenues")
		return
	}
	data := gin.H{"venues": venues}
	if validationErr != nil {
		data["errors"] = validationErr
	}
	h.render(c, status, "add_show", data)
}

func (h *ShowHandler) renderEditForm(c *gin.Context, status int, id int, validationErr error) {
	ctx := c.Request.Context()
	show, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrShowNotFound) {
			h.notFound(c, msgShowNotFound)
			return
		}
		h.internalError(c, err, "EditShowForm")
		return
	}

	venues, err := h.venues.List(ctx)
	if err != nil {
		h.internalError(c, err, "ListVenues")
		return
	}

	data := gin.H{"show": show, "venues": venues}
	if validationErr != nil {
		data["errors"] = validationErr
	}
	h.render(c, status, "edit_show", data)
}
