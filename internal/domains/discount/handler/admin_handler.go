package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookings-backend/internal/domains/discount/model"
	"bookings-backend/internal/domains/discount/service"
	"bookings-backend/internal/shared/response"
)

// AdminHandler manages discount codes. Mounted behind JWT + admin middleware.
type AdminHandler struct {
	service service.ServiceInterface
}

func NewAdminHandler(service service.ServiceInterface) *AdminHandler {
	return &AdminHandler{service: service}
}

// CreateDiscount - POST /v1/admin/discounts
func (h *AdminHandler) CreateDiscount(c *gin.Context) {
	var req model.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	discount, err := h.service.CreateDiscount(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateCode) {
			response.Conflict(c, "discount code already exists")
			return
		}
		if errors.Is(err, model.ErrInvalidValueType) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalServerError(c, "failed to create discount")
		return
	}

	response.Success(c, http.StatusCreated, discount)
}

// UpdateDiscount - PATCH /v1/admin/discounts/:id
func (h *AdminHandler) UpdateDiscount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid discount id")
		return
	}

	var req model.UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	discount, err := h.service.UpdateDiscount(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, model.ErrDiscountNotFound) {
			response.NotFound(c, "discount not found")
			return
		}
		response.InternalServerError(c, "failed to update discount")
		return
	}

	response.Success(c, http.StatusOK, discount)
}
