package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookings-backend/internal/domains/discount/model"
	"bookings-backend/internal/domains/discount/service"
	planModel "bookings-backend/internal/domains/plan/model"
	"bookings-backend/internal/shared/response"
)

// PublicHandler exposes the code preview used by the booking form before
// checkout.
type PublicHandler struct {
	service service.ServiceInterface
}

func NewPublicHandler(service service.ServiceInterface) *PublicHandler {
	return &PublicHandler{service: service}
}

// ValidateCode - POST /v1/discounts/validate
func (h *PublicHandler) ValidateCode(c *gin.Context) {
	var req model.ValidateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	quote, err := h.service.QuoteByCode(c.Request.Context(), req.PlanID, req.Code, req.ProductType)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrDiscountNotFound):
			response.UnprocessableEntity(c, "DISCOUNT_NOT_FOUND", "discount not found or inactive")
		case errors.Is(err, model.ErrDiscountNotYetActive):
			response.UnprocessableEntity(c, "DISCOUNT_NOT_YET_ACTIVE", "discount is not active yet")
		case errors.Is(err, model.ErrDiscountExpired):
			response.UnprocessableEntity(c, "DISCOUNT_EXPIRED", "discount has expired")
		case errors.Is(err, model.ErrDiscountNotApplicable):
			response.UnprocessableEntity(c, "DISCOUNT_NOT_APPLICABLE", "discount does not apply to this product")
		case errors.Is(err, model.ErrDiscountUsageExceeded):
			response.UnprocessableEntity(c, "DISCOUNT_USAGE_EXCEEDED", "discount usage limit reached")
		case errors.Is(err, planModel.ErrPlanNotFound):
			response.UnprocessableEntity(c, "PLAN_NOT_FOUND", "payment plan not found or inactive")
		default:
			response.InternalServerError(c, "failed to validate discount")
		}
		return
	}

	response.Success(c, http.StatusOK, quote)
}
