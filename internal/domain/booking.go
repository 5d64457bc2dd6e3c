package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Active reports whether the booking still holds its seat. Cancelled is
// terminal; a cancelled booking is never reactivated.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// CanTransitionTo encodes the full transition matrix:
// Pending→Confirmed, Pending→Cancelled, Confirmed→Cancelled.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCancelled
	}
	return false
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid booking status %q", s)
	}
	return st, nil
}

type Booking struct {
	ID          int64         `json:"id"`
	Reference   string        `json:"reference"`
	FlightID    int64         `json:"flight_id"`
	PassengerID int64         `json:"passenger_id"`
	UserID      int64         `json:"user_id"`
	SeatClass   SeatClass     `json:"seat_class"`
	SeatNumber  int           `json:"seat_number"`
	FareCents   int64         `json:"fare_cents"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// SeatLabel renders the assigned seat as number plus class letter, e.g. "1E".
func (b *Booking) SeatLabel() string {
	return fmt.Sprintf("%d%s", b.SeatNumber, b.SeatClass.Letter())
}
