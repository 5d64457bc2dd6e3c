package booking

import "time"

const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCancelled = "booking_cancelled"
	EventFlightCancelled  = "flight_cancelled"
)

// BookingEvent is the payload published to the booking events topic after a
// lifecycle change commits. The worker consumes it for notifications.
type BookingEvent struct {
	Type       string    `json:"type"`
	Reference  string    `json:"reference,omitempty"`
	BookingID  int64     `json:"booking_id,omitempty"`
	FlightID   int64     `json:"flight_id"`
	SeatClass  string    `json:"seat_class,omitempty"`
	SeatLabel  string    `json:"seat_label,omitempty"`
	FareCents  int64     `json:"fare_cents,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
