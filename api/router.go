// Package api exposes the booking engine over HTTP with gin.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/middleware"
)

// NewRouter assembles the gin engine with all routes mounted under /api/v1.
func NewRouter(bookingHandler *BookingHandler, flightHandler *FlightHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Identity())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/flights", flightHandler.List)
		v1.GET("/flights/:id", flightHandler.Get)
		v1.GET("/flights/:id/bookings", flightHandler.ListBookings)
		v1.POST("/flights/:id/cancel", flightHandler.Cancel)

		v1.POST("/bookings", bookingHandler.Create)
		v1.GET("/bookings", bookingHandler.ListMine)
		v1.GET("/bookings/:id", bookingHandler.Get)
		v1.PATCH("/bookings/:id/status", bookingHandler.ChangeStatus)
	}

	return router
}
