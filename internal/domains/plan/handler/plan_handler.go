package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookings-backend/internal/domains/plan/model"
	"bookings-backend/internal/domains/plan/repository"
	"bookings-backend/internal/shared/response"
	"bookings-backend/pkg/cache"
)

const listCacheTTL = 5 * time.Minute

type Handler struct {
	repo  repository.PlanRepository
	cache cache.Cache
}

func NewHandler(repo repository.PlanRepository, cache cache.Cache) *Handler {
	return &Handler{repo: repo, cache: cache}
}

// ListPlans - GET /v1/plans?product_type=holiday_camp
func (h *Handler) ListPlans(c *gin.Context) {
	productType := c.Query("product_type")
	cacheKey := "plans:active:" + productType

	var cached []*model.PaymentPlan
	if found, err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && found {
		response.Success(c, http.StatusOK, cached)
		return
	}

	plans, err := h.repo.ListActive(c.Request.Context(), productType)
	if err != nil {
		response.InternalServerError(c, "failed to list plans")
		return
	}

	// Cache errors are not worth failing the request over.
	_ = h.cache.Set(c.Request.Context(), cacheKey, plans, listCacheTTL)

	response.Success(c, http.StatusOK, plans)
}
