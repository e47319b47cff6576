package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookings-backend/internal/shared/middleware"
	"bookings-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())

	router.GET("/api/v1/health", func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": c.Config.App.Version,
		})
	})

	v1 := router.Group("/api/v1")
	{
		bookings := v1.Group("/bookings")
		{
			bookings.POST("/birthday-parties", c.BookingHandler.CreateBirthdayParty)
			bookings.POST("/one-to-one", c.BookingHandler.CreateOneToOne)
			bookings.POST("/holiday-camps", c.BookingHandler.CreateHolidayCamp)
			bookings.POST("/holiday-camps/waiting-list", c.BookingHandler.CreateWaitingList)
			bookings.GET("/:id", c.BookingHandler.GetBooking)
			bookings.POST("/:id/cancel", c.BookingHandler.CancelBooking)
			bookings.POST("/:id/renew", c.BookingHandler.RenewBooking)
		}

		v1.GET("/plans", c.PlanHandler.ListPlans)
		v1.POST("/discounts/validate", c.DiscountHandler.ValidateCode)

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
		{
			admin.POST("/discounts", c.DiscountAdminHandler.CreateDiscount)
			admin.PATCH("/discounts/:id", c.DiscountAdminHandler.UpdateDiscount)
		}
	}

	return router
}
