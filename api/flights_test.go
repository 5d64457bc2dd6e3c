package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/domain"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/middleware"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/service/booking"
)

type mockFlightUseCase struct {
	mock.Mock
}

func (m *mockFlightUseCase) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *mockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func flightTestRouter(flightSvc *mockFlightUseCase, bookingSvc *mockBookingUseCase) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Identity())
	h := NewFlightHandler(flightSvc, bookingSvc)
	router.GET("/api/v1/flights", h.List)
	router.GET("/api/v1/flights/:id", h.Get)
	router.GET("/api/v1/flights/:id/bookings", h.ListBookings)
	router.POST("/api/v1/flights/:id/cancel", h.Cancel)
	return router
}

var adminHeaders = map[string]string{"X-User-ID": "1", "X-User-Role": "admin"}

func TestListFlights(t *testing.T) {
	flightSvc := new(mockFlightUseCase)
	flightSvc.On("List", mock.Anything).
		Return([]domain.Flight{{ID: 1, FlightNumber: "BK101"}}, nil).Once()

	w := doRequest(flightTestRouter(flightSvc, new(mockBookingUseCase)),
		http.MethodGet, "/api/v1/flights", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "BK101")
	flightSvc.AssertExpectations(t)
}

func TestGetFlightNotFound(t *testing.T) {
	flightSvc := new(mockFlightUseCase)
	flightSvc.On("GetByID", mock.Anything, int64(9)).
		Return(nil, &domain.NotFoundError{Entity: "flight", ID: 9}).Once()

	w := doRequest(flightTestRouter(flightSvc, new(mockBookingUseCase)),
		http.MethodGet, "/api/v1/flights/9", nil, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListFlightBookingsRequiresAdmin(t *testing.T) {
	bookingSvc := new(mockBookingUseCase)
	w := doRequest(flightTestRouter(new(mockFlightUseCase), bookingSvc),
		http.MethodGet, "/api/v1/flights/7/bookings", nil,
		map[string]string{"X-User-ID": "42"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	bookingSvc.AssertNotCalled(t, "ListByFlight", mock.Anything, mock.Anything, mock.Anything)
}

func TestListFlightBookingsWithStatusFilter(t *testing.T) {
	bookingSvc := new(mockBookingUseCase)
	confirmed := domain.BookingStatusConfirmed
	bookingSvc.On("ListByFlight", mock.Anything, int64(7), &confirmed).
		Return([]domain.Booking{{ID: 1, SeatClass: domain.SeatClassEconomy, SeatNumber: 1, Status: confirmed}}, nil).Once()

	w := doRequest(flightTestRouter(new(mockFlightUseCase), bookingSvc),
		http.MethodGet, "/api/v1/flights/7/bookings?status=CONFIRMED", nil, adminHeaders)

	require.Equal(t, http.StatusOK, w.Code)
	bookingSvc.AssertExpectations(t)
}

func TestListFlightBookingsRejectsBadStatus(t *testing.T) {
	bookingSvc := new(mockBookingUseCase)
	w := doRequest(flightTestRouter(new(mockFlightUseCase), bookingSvc),
		http.MethodGet, "/api/v1/flights/7/bookings?status=EXPIRED", nil, adminHeaders)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	bookingSvc.AssertNotCalled(t, "ListByFlight", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelFlight(t *testing.T) {
	bookingSvc := new(mockBookingUseCase)
	bookingSvc.On("CancelFlight", mock.Anything, int64(7)).
		Return(&booking.CancelFlightResult{
			CancelledBookings: 3,
			ReleasedSeats: map[domain.SeatClass]int{
				domain.SeatClassEconomy:  2,
				domain.SeatClassBusiness: 1,
			},
		}, nil).Once()

	w := doRequest(flightTestRouter(new(mockFlightUseCase), bookingSvc),
		http.MethodPost, "/api/v1/flights/7/cancel", nil, adminHeaders)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		CancelledBookings int            `json:"cancelled_bookings"`
		ReleasedSeats     map[string]int `json:"released_seats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.CancelledBookings)
	assert.Equal(t, 2, resp.ReleasedSeats["ECONOMY"])
	assert.Equal(t, 1, resp.ReleasedSeats["BUSINESS"])
}

func TestCancelFlightRequiresAdmin(t *testing.T) {
	bookingSvc := new(mockBookingUseCase)
	w := doRequest(flightTestRouter(new(mockFlightUseCase), bookingSvc),
		http.MethodPost, "/api/v1/flights/7/cancel", nil, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	bookingSvc.AssertNotCalled(t, "CancelFlight", mock.Anything, mock.Anything)
}

func TestCancelFlightNotFound(t *testing.T) {
	bookingSvc := new(mockBookingUseCase)
	bookingSvc.On("CancelFlight", mock.Anything, int64(9)).
		Return(nil, &domain.NotFoundError{Entity: "flight", ID: 9}).Once()

	w := doRequest(flightTestRouter(new(mockFlightUseCase), bookingSvc),
		http.MethodPost, "/api/v1/flights/9/cancel", nil, adminHeaders)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
