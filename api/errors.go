package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP statuses. Anything unmapped is a
// server fault and its detail stays out of the response body.
func writeError(c *gin.Context, err error) {
	var (
		notFound     *domain.NotFoundError
		insufficient *domain.InsufficientInventoryError
		duplicate    *domain.DuplicatePassengerError
		capExceeded  *domain.BookingCapExceededError
		transition   *domain.InvalidTransitionError
		noSeat       *domain.NoSeatAvailableError
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &insufficient),
		errors.As(err, &duplicate),
		errors.As(err, &capExceeded),
		errors.As(err, &transition),
		errors.Is(err, domain.ErrFlightCancelled):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidSeatClass):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &noSeat):
		slog.Error("seat assignment inconsistency", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
