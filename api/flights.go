package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/domain"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/middleware"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/service/booking"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/service/flights"
)

type FlightHandler struct {
	flights  flights.FlightUseCase
	bookings booking.BookingUseCase
}

func NewFlightHandler(flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) *FlightHandler {
	return &FlightHandler{flights: flightSvc, bookings: bookingSvc}
}

func (h *FlightHandler) List(c *gin.Context) {
	list, err := h.flights.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flights": list})
}

func (h *FlightHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid flight id"})
		return
	}

	flight, err := h.flights.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

// ListBookings returns a flight's bookings, optionally filtered by status.
// Admin only.
func (h *FlightHandler) ListBookings(c *gin.Context) {
	if !middleware.IsAdmin(c.Request.Context()) {
		c.JSON(http.StatusForbidden, errorResponse{Error: "admin access required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid flight id"})
		return
	}

	var status *domain.BookingStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := domain.ParseBookingStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		status = &parsed
	}

	list, err := h.bookings.ListByFlight(c.Request.Context(), id, status)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toBookingResponse(&list[i]))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": resp})
}

// Cancel marks a flight cancelled and cascades to its active bookings.
// Safe to call twice. Admin only.
func (h *FlightHandler) Cancel(c *gin.Context) {
	if !middleware.IsAdmin(c.Request.Context()) {
		c.JSON(http.StatusForbidden, errorResponse{Error: "admin access required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid flight id"})
		return
	}

	result, err := h.bookings.CancelFlight(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	released := make(map[string]int, len(result.ReleasedSeats))
	for class, n := range result.ReleasedSeats {
		released[string(class)] = n
	}
	c.JSON(http.StatusOK, gin.H{
		"cancelled_bookings": result.CancelledBookings,
		"released_seats":     released,
	})
}
