package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/domain"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/middleware"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/service/booking"
)

type BookingHandler struct {
	svc booking.BookingUseCase
}

func NewBookingHandler(svc booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type passengerRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	PassportNumber string `json:"passport_number" binding:"required"`
	Nationality    string `json:"nationality"`
	Gender         string `json:"gender"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"date_of_birth" binding:"required"`
	SeatClass      string `json:"seat_class" binding:"required"`
}

type createBookingsRequest struct {
	FlightID   int64              `json:"flight_id" binding:"required"`
	Passengers []passengerRequest `json:"passengers" binding:"required,min=1"`
}

type bookingResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	FlightID  int64  `json:"flight_id"`
	SeatClass string `json:"seat_class"`
	Seat      string `json:"seat"`
	FareCents int64  `json:"fare_cents"`
	Status    string `json:"status"`
}

type createBookingsResponse struct {
	Bookings       []bookingResponse `json:"bookings"`
	TotalFareCents int64             `json:"total_fare_cents"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:        b.ID,
		Reference: b.Reference,
		FlightID:  b.FlightID,
		SeatClass: string(b.SeatClass),
		Seat:      b.SeatLabel(),
		FareCents: b.FareCents,
		Status:    string(b.Status),
	}
}

// Create books seats for a batch of passengers on one flight. The whole
// batch succeeds or fails together.
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	var req createBookingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	input := booking.CreateBookingsInput{FlightID: req.FlightID, UserID: userID}
	for _, p := range req.Passengers {
		passenger, err := toPassengerInput(p)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		input.Passengers = append(input.Passengers, passenger)
	}

	result, err := h.svc.CreateBookings(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := createBookingsResponse{TotalFareCents: result.TotalFareCents}
	for i := range result.Bookings {
		resp.Bookings = append(resp.Bookings, toBookingResponse(&result.Bookings[i]))
	}
	c.JSON(http.StatusCreated, resp)
}

func toPassengerInput(p passengerRequest) (booking.PassengerInput, error) {
	passport := domain.NormalizePassport(p.PassportNumber)
	if !domain.ValidPassport(passport) {
		return booking.PassengerInput{}, &validationError{field: "passport_number", reason: "must be 5-20 alphanumeric characters"}
	}

	dob, err := time.Parse("2006-01-02", p.DateOfBirth)
	if err != nil {
		return booking.PassengerInput{}, &validationError{field: "date_of_birth", reason: "must be YYYY-MM-DD"}
	}
	if dob.After(time.Now()) {
		return booking.PassengerInput{}, &validationError{field: "date_of_birth", reason: "must not be in the future"}
	}

	class, err := domain.ParseSeatClass(p.SeatClass)
	if err != nil {
		return booking.PassengerInput{}, &validationError{field: "seat_class", reason: err.Error()}
	}

	return booking.PassengerInput{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		PassportNumber: passport,
		Nationality:    p.Nationality,
		Gender:         p.Gender,
		Phone:          p.Phone,
		DateOfBirth:    dob,
		SeatClass:      class,
	}, nil
}

type validationError struct {
	field  string
	reason string
}

func (e *validationError) Error() string {
	return e.field + ": " + e.reason
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}

	b, err := h.svc.GetBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

// ListMine returns the caller's bookings, newest first.
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	bookings, err := h.svc.ListUserBookings(c.Request.Context(), userID, page)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": resp, "page": page})
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ChangeStatus confirms or cancels a booking. Admin only.
func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	if !middleware.IsAdmin(c.Request.Context()) {
		c.JSON(http.StatusForbidden, errorResponse{Error: "admin access required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}

	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	b, err := h.svc.ChangeStatus(c.Request.Context(), id, status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}
