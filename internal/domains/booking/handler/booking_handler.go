package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookings-backend/internal/domains/booking/model"
	"bookings-backend/internal/domains/booking/service"
	capacityModel "bookings-backend/internal/domains/capacity/model"
	discountModel "bookings-backend/internal/domains/discount/model"
	planModel "bookings-backend/internal/domains/plan/model"
	"bookings-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateBirthdayParty - POST /v1/bookings/birthday-parties
func (h *Handler) CreateBirthdayParty(c *gin.Context) {
	h.create(c, model.BirthdayPartyProduct)
}

// CreateOneToOne - POST /v1/bookings/one-to-one
func (h *Handler) CreateOneToOne(c *gin.Context) {
	h.create(c, model.OneToOneProduct)
}

// CreateHolidayCamp - POST /v1/bookings/holiday-camps
func (h *Handler) CreateHolidayCamp(c *gin.Context) {
	h.create(c, model.HolidayCampProduct)
}

func (h *Handler) create(c *gin.Context, cfg model.ProductConfig) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), cfg, &req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// CreateWaitingList - POST /v1/bookings/holiday-camps/waiting-list
func (h *Handler) CreateWaitingList(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.CreateWaitingList(c.Request.Context(), &req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// GetBooking - GET /v1/bookings/:id
func (h *Handler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// CancelBooking - POST /v1/bookings/:id/cancel
func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": string(model.StatusCancelled)})
}

// RenewBooking - POST /v1/bookings/:id/renew
func (h *Handler) RenewBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	if err := h.service.Renew(c.Request.Context(), id); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": string(model.StatusActive)})
}

// mapError translates domain errors into HTTP statuses. A failed charge never
// lands here: it rides back as a success response with payment_status failed.
func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrDuplicateBooking):
		response.Conflict(c, "a booking already exists for this lead")
	case errors.Is(err, model.ErrBookingNotFound):
		response.NotFound(c, "booking not found")
	case errors.Is(err, model.ErrInvalidStatusTransition):
		response.Conflict(c, "booking cannot move to the requested status")
	case errors.Is(err, model.ErrClassScheduleRequired):
		response.BadRequest(c, "class_schedule_id is required for this product")
	case errors.Is(err, planModel.ErrPlanNotFound):
		response.UnprocessableEntity(c, "PLAN_NOT_FOUND", "payment plan not found or inactive")
	case errors.Is(err, discountModel.ErrDiscountNotFound):
		response.UnprocessableEntity(c, "DISCOUNT_NOT_FOUND", "discount not found or inactive")
	case errors.Is(err, discountModel.ErrDiscountNotYetActive):
		response.UnprocessableEntity(c, "DISCOUNT_NOT_YET_ACTIVE", "discount is not active yet")
	case errors.Is(err, discountModel.ErrDiscountExpired):
		response.UnprocessableEntity(c, "DISCOUNT_EXPIRED", "discount has expired")
	case errors.Is(err, discountModel.ErrDiscountNotApplicable):
		response.UnprocessableEntity(c, "DISCOUNT_NOT_APPLICABLE", "discount does not apply to this product")
	case errors.Is(err, discountModel.ErrDiscountUsageExceeded):
		response.UnprocessableEntity(c, "DISCOUNT_USAGE_EXCEEDED", "discount usage limit reached")
	case errors.Is(err, capacityModel.ErrClassNotFound):
		response.UnprocessableEntity(c, "CLASS_NOT_FOUND", "class schedule not found")
	case errors.Is(err, capacityModel.ErrInsufficientCapacity):
		response.UnprocessableEntity(c, "INSUFFICIENT_CAPACITY", "class does not have enough seats")
	case errors.Is(err, capacityModel.ErrCapacityStillAvailable):
		response.UnprocessableEntity(c, "CAPACITY_STILL_AVAILABLE", "class still has seats, book directly instead")
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
