package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSeatClass = errors.New("invalid seat class")
	ErrFlightCancelled  = errors.New("flight is cancelled")
)

// InsufficientInventoryError is returned when the per-class availability
// counter cannot cover the requested seats.
type InsufficientInventoryError struct {
	FlightID int64
	Class    SeatClass
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("no seats available in %s on flight %d", e.Class, e.FlightID)
}

// DuplicatePassengerError is returned when a passport already holds an
// active booking on the flight.
type DuplicatePassengerError struct {
	FlightID       int64
	PassportNumber string
}

func (e *DuplicatePassengerError) Error() string {
	return fmt.Sprintf("passport %s already holds an active booking on flight %d", e.PassportNumber, e.FlightID)
}

// BookingCapExceededError is returned when a purchasing account would exceed
// its per-flight active booking cap. Remaining is how many more bookings the
// account may still create on the flight.
type BookingCapExceededError struct {
	FlightID  int64
	UserID    int64
	Remaining int
}

func (e *BookingCapExceededError) Error() string {
	return fmt.Sprintf("booking cap exceeded for user %d on flight %d, %d remaining", e.UserID, e.FlightID, e.Remaining)
}

// NoSeatAvailableError indicates the seat scan exhausted the class capacity
// even though the availability counter admitted the reservation. That is a
// consistency failure, not a normal sold-out condition.
type NoSeatAvailableError struct {
	FlightID int64
	Class    SeatClass
}

func (e *NoSeatAvailableError) Error() string {
	return fmt.Sprintf("no free seat number in %s on flight %d", e.Class, e.FlightID)
}

type InvalidTransitionError struct {
	BookingID int64
	From      BookingStatus
	To        BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("booking %d cannot transition from %s to %s", e.BookingID, e.From, e.To)
}

type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}
