package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fisherfans/fisherfans-backend/internal/auth"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/request"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/response"
	"github.com/fisherfans/fisherfans-backend/internal/reservation"
)

type ReservationHandler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// Create reserves seats on a trip for the current user.
func (h *ReservationHandler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	r, err := h.service.Create(c.Request.Context(), auth.GetActor(c), req.ToService())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReservationResponse(r))
}

// List retrieves the reservations visible to the current user.
func (h *ReservationHandler) List(c *gin.Context) {
	var req ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	filter, err := req.ToFilter()
	if err != nil {
		response.Error(c, err)
		return
	}

	reservations, total, err := h.service.List(c.Request.Context(), auth.GetActor(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.page(c, reservations, req.Page, req.PageSize, total)
}

// ListForTrip retrieves all reservations of a trip for its organizer.
func (h *ReservationHandler) ListForTrip(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var req ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	filter, err := req.ToFilter()
	if err != nil {
		response.Error(c, err)
		return
	}

	reservations, total, err := h.service.ListForTrip(c.Request.Context(), auth.GetActor(c), uri.ID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.page(c, reservations, req.Page, req.PageSize, total)
}

func (h *ReservationHandler) page(c *gin.Context, reservations []*reservation.Reservation, page, pageSize, total int) {
	c.JSON(http.StatusOK, response.MapPage(reservations, NewReservationResponse, page, pageSize, total))
}

func (h *ReservationHandler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), auth.GetActor(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(r))
}

func (h *ReservationHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid body", err)
		return
	}

	r, err := h.service.Update(c.Request.Context(), auth.GetActor(c), uri.ID, body.ToService())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(r))
}

func (h *ReservationHandler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), auth.GetActor(c), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
