// Package email turns booking events into passenger notifications. The
// sender only logs; actual delivery is outside this system.
package email

import (
	"context"
	"log/slog"

	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/service/booking"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event booking.BookingEvent) error {
	slog.Info("send booking notification",
		"type", event.Type,
		"reference", event.Reference,
		"flight_id", event.FlightID,
		"seat", event.SeatLabel,
		"status", event.Status)
	return nil
}
