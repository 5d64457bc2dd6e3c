// Package booking implements the seat-inventory allocation and
// booking-lifecycle engine. Every mutating operation runs as a single
// transaction: either all of its writes land or none do.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/domain"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/repository"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/seating"
)

// DefaultMaxActivePerUser caps active bookings per purchasing account per
// flight when the config does not override it.
const DefaultMaxActivePerUser = 4

type BookingUseCase interface {
	CreateBookings(ctx context.Context, input CreateBookingsInput) (*CreateBookingsResult, error)
	ChangeStatus(ctx context.Context, bookingID int64, next domain.BookingStatus) (*domain.Booking, error)
	CancelFlight(ctx context.Context, flightID int64) (*CancelFlightResult, error)
	GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	ListByFlight(ctx context.Context, flightID int64, status *domain.BookingStatus) ([]domain.Booking, error)
	ListUserBookings(ctx context.Context, userID int64, page int) ([]domain.Booking, error)
	ReconcileInventory(ctx context.Context) ([]InventoryDrift, error)
}

// Cache sheds duplicate submissions before they reach the database and
// invalidates the flight list after a cancellation. The database constraints
// stay authoritative; a nil Cache disables both concerns.
type Cache interface {
	AcquireSubmitLock(ctx context.Context, flightID int64, passport string, ttl time.Duration) (bool, error)
	ReleaseSubmitLock(ctx context.Context, flightID int64, passport string) error
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	tx         repository.TxRunner
	bookings   repository.BookingRepository
	flights    repository.FlightRepository
	passengers repository.PassengerRepository
	inventory  repository.InventoryRepository
	cache      Cache
	producer   Producer

	bookingTopic     string
	maxActivePerUser int
	submitLockTTL    time.Duration
	pageSize         int
}

type BookingServiceOption func(*BookingService)

func WithMaxActivePerUser(n int) BookingServiceOption {
	return func(s *BookingService) {
		if n > 0 {
			s.maxActivePerUser = n
		}
	}
}

func WithPageSize(n int) BookingServiceOption {
	return func(s *BookingService) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

func NewBookingService(
	tx repository.TxRunner,
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	passengers repository.PassengerRepository,
	inventory repository.InventoryRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	submitLockTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	s := &BookingService{
		tx:               tx,
		bookings:         bookings,
		flights:          flights,
		passengers:       passengers,
		inventory:        inventory,
		cache:            cache,
		producer:         producer,
		bookingTopic:     bookingTopic,
		maxActivePerUser: DefaultMaxActivePerUser,
		submitLockTTL:    submitLockTTL,
		pageSize:         20,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PassengerInput is one traveller in a booking request. Fields arrive
// already validated by the presentation layer; the passport is normalized
// again here because identity dedup depends on it.
type PassengerInput struct {
	FirstName      string
	LastName       string
	PassportNumber string
	Nationality    string
	Gender         string
	Phone          string
	DateOfBirth    time.Time
	SeatClass      domain.SeatClass
}

type CreateBookingsInput struct {
	FlightID   int64
	UserID     int64
	Passengers []PassengerInput
}

type CreateBookingsResult struct {
	Bookings       []domain.Booking
	TotalFareCents int64
}

type CancelFlightResult struct {
	CancelledBookings int
	ReleasedSeats     map[domain.SeatClass]int
}

// InventoryDrift reports a counter that no longer equals
// capacity minus active bookings for its class.
type InventoryDrift struct {
	FlightID  int64
	Class     domain.SeatClass
	Available int
	Expected  int
}

// CreateBookings books every passenger in the batch or none of them. Per
// passenger, in one transaction: duplicate guard, resolve-or-create the
// passenger, reserve one seat from inventory, assign the lowest free seat
// number, insert the Pending booking with the fare captured from the flight.
//
// The flight row is locked for the whole transaction: the lock serializes
// concurrent batches on the same flight (so the seat numbers read later are
// consistent) and keeps the status check current against a concurrent
// CancelFlight, which takes the same lock.
func (s *BookingService) CreateBookings(ctx context.Context, input CreateBookingsInput) (*CreateBookingsResult, error) {
	if len(input.Passengers) == 0 {
		return nil, errors.New("at least one passenger is required")
	}
	passengers := make([]PassengerInput, len(input.Passengers))
	copy(passengers, input.Passengers)
	for i := range passengers {
		passengers[i].PassportNumber = domain.NormalizePassport(passengers[i].PassportNumber)
		if !passengers[i].SeatClass.Valid() {
			return nil, domain.ErrInvalidSeatClass
		}
	}

	locked, err := s.acquireSubmitLocks(ctx, input.FlightID, passengers)
	if err != nil {
		return nil, err
	}
	defer s.releaseSubmitLocks(ctx, input.FlightID, locked)

	var result CreateBookingsResult
	err = s.tx.InTx(ctx, func(q repository.Querier) error {
		flight, err := s.flights.GetByIDForUpdate(ctx, q, input.FlightID)
		if err != nil {
			return err
		}
		if flight.Status == domain.FlightStatusCancelled {
			return domain.ErrFlightCancelled
		}

		active, err := s.bookings.CountActiveForUser(ctx, q, input.FlightID, input.UserID)
		if err != nil {
			return err
		}
		if active+len(passengers) > s.maxActivePerUser {
			return &domain.BookingCapExceededError{
				FlightID:  input.FlightID,
				UserID:    input.UserID,
				Remaining: s.maxActivePerUser - active,
			}
		}

		for _, p := range passengers {
			b, err := s.bookOne(ctx, q, flight, input.UserID, p)
			if err != nil {
				return err
			}
			result.Bookings = append(result.Bookings, *b)
			result.TotalFareCents += b.FareCents
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range result.Bookings {
		s.publishBookingEvent(ctx, EventBookingCreated, &result.Bookings[i])
	}
	return &result, nil
}

func (s *BookingService) bookOne(ctx context.Context, q repository.Querier, flight *domain.Flight, userID int64, p PassengerInput) (*domain.Booking, error) {
	// Guard runs inside the transaction so it also sees bookings inserted
	// earlier in the same batch.
	n, err := s.bookings.CountActiveForPassport(ctx, q, flight.ID, p.PassportNumber)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, &domain.DuplicatePassengerError{FlightID: flight.ID, PassportNumber: p.PassportNumber}
	}

	passenger := &domain.Passenger{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		PassportNumber: p.PassportNumber,
		Nationality:    p.Nationality,
		Gender:         p.Gender,
		Phone:          p.Phone,
		DateOfBirth:    p.DateOfBirth,
	}
	if err := s.passengers.GetOrCreate(ctx, q, passenger); err != nil {
		return nil, err
	}

	if err := s.inventory.TryReserve(ctx, q, flight.ID, p.SeatClass, 1); err != nil {
		return nil, err
	}

	taken, err := s.bookings.ActiveSeatNumbers(ctx, q, flight.ID, p.SeatClass)
	if err != nil {
		return nil, err
	}
	seat, ok := seating.Assign(taken, flight.Capacity(p.SeatClass))
	if !ok {
		// The counter admitted us but every seat number is held: the
		// counter and the ledger disagree. Abort the whole batch.
		return nil, &domain.NoSeatAvailableError{FlightID: flight.ID, Class: p.SeatClass}
	}

	b := &domain.Booking{
		Reference:   uuid.NewString(),
		FlightID:    flight.ID,
		PassengerID: passenger.ID,
		UserID:      userID,
		SeatClass:   p.SeatClass,
		SeatNumber:  seat,
		FareCents:   flight.PriceCents(p.SeatClass),
		Status:      domain.BookingStatusPending,
	}
	if err := s.bookings.Insert(ctx, q, b); err != nil {
		if errors.Is(err, repository.ErrDuplicateActiveBooking) {
			return nil, &domain.DuplicatePassengerError{FlightID: flight.ID, PassportNumber: p.PassportNumber}
		}
		return nil, err
	}
	return b, nil
}

// ChangeStatus applies an administrative transition. Cancelling releases the
// booking's seat back to inventory; confirming does not touch inventory
// because the seat was already taken out at creation.
func (s *BookingService) ChangeStatus(ctx context.Context, bookingID int64, next domain.BookingStatus) (*domain.Booking, error) {
	if !next.Valid() || next == domain.BookingStatusPending {
		return nil, &domain.InvalidTransitionError{BookingID: bookingID, To: next}
	}

	var updated *domain.Booking
	err := s.tx.InTx(ctx, func(q repository.Querier) error {
		b, err := s.bookings.GetByIDForUpdate(ctx, q, bookingID)
		if err != nil {
			return err
		}
		if !b.Status.CanTransitionTo(next) {
			return &domain.InvalidTransitionError{BookingID: bookingID, From: b.Status, To: next}
		}
		if err := s.bookings.UpdateStatus(ctx, q, bookingID, next); err != nil {
			return err
		}
		if next == domain.BookingStatusCancelled {
			if err := s.inventory.Release(ctx, q, b.FlightID, b.SeatClass, 1); err != nil {
				return err
			}
		}
		b.Status = next
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch next {
	case domain.BookingStatusConfirmed:
		s.publishBookingEvent(ctx, EventBookingConfirmed, updated)
	case domain.BookingStatusCancelled:
		s.publishBookingEvent(ctx, EventBookingCancelled, updated)
	}
	return updated, nil
}

// CancelFlight marks the flight cancelled and cascades: every active booking
// is cancelled and its seat released, all in one transaction. Running it
// again is a no-op because the second run finds no active bookings.
func (s *BookingService) CancelFlight(ctx context.Context, flightID int64) (*CancelFlightResult, error) {
	result := &CancelFlightResult{ReleasedSeats: make(map[domain.SeatClass]int)}
	var cancelled []domain.Booking
	var flipped bool

	err := s.tx.InTx(ctx, func(q repository.Querier) error {
		flight, err := s.flights.GetByIDForUpdate(ctx, q, flightID)
		if err != nil {
			return err
		}
		if flight.Status != domain.FlightStatusCancelled {
			if err := s.flights.SetStatus(ctx, q, flightID, domain.FlightStatusCancelled); err != nil {
				return err
			}
			flipped = true
		}

		active, err := s.bookings.ListActiveByFlightForUpdate(ctx, q, flightID)
		if err != nil {
			return err
		}
		for i := range active {
			if err := s.bookings.UpdateStatus(ctx, q, active[i].ID, domain.BookingStatusCancelled); err != nil {
				return err
			}
			active[i].Status = domain.BookingStatusCancelled
			result.ReleasedSeats[active[i].SeatClass]++
		}
		for _, class := range domain.SeatClasses {
			if n := result.ReleasedSeats[class]; n > 0 {
				if err := s.inventory.Release(ctx, q, flightID, class, n); err != nil {
					return err
				}
			}
		}
		result.CancelledBookings = len(active)
		cancelled = active
		return nil
	})
	if err != nil {
		return nil, err
	}

	// A re-run finds the flight already cancelled and nothing active:
	// no event, no cache churn.
	if flipped {
		if s.cache != nil {
			if err := s.cache.InvalidateFlights(ctx); err != nil {
				slog.Warn("invalidate flights cache", "error", err)
			}
		}
		s.publishFlightCancelled(ctx, flightID)
	}
	for i := range cancelled {
		s.publishBookingEvent(ctx, EventBookingCancelled, &cancelled[i])
	}
	return result, nil
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	var b *domain.Booking
	err := s.tx.InTx(ctx, func(q repository.Querier) error {
		var err error
		b, err = s.bookings.GetByID(ctx, q, bookingID)
		return err
	})
	return b, err
}

func (s *BookingService) ListByFlight(ctx context.Context, flightID int64, status *domain.BookingStatus) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := s.tx.InTx(ctx, func(q repository.Querier) error {
		var err error
		bookings, err = s.bookings.ListByFlight(ctx, q, flightID, status)
		return err
	})
	return bookings, err
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID int64, page int) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := s.tx.InTx(ctx, func(q repository.Querier) error {
		var err error
		bookings, err = s.bookings.ListByUser(ctx, q, userID, page, s.pageSize)
		return err
	})
	return bookings, err
}

// ReconcileInventory compares every availability counter against
// capacity minus active bookings and reports the rows that drifted. It only
// reports; repairs are a manual decision.
func (s *BookingService) ReconcileInventory(ctx context.Context) ([]InventoryDrift, error) {
	var drifts []InventoryDrift
	err := s.tx.InTx(ctx, func(q repository.Querier) error {
		flights, err := s.flights.List(ctx, q)
		if err != nil {
			return err
		}
		counts, err := s.bookings.ActiveCountsByClass(ctx, q)
		if err != nil {
			return err
		}

		activeByKey := make(map[string]int, len(counts))
		for _, c := range counts {
			activeByKey[fmt.Sprintf("%d/%s", c.FlightID, c.Class)] = c.Count
		}
		for _, f := range flights {
			for _, class := range domain.SeatClasses {
				expected := f.Capacity(class) - activeByKey[fmt.Sprintf("%d/%s", f.ID, class)]
				if available := f.Available(class); available != expected {
					drifts = append(drifts, InventoryDrift{
						FlightID:  f.ID,
						Class:     class,
						Available: available,
						Expected:  expected,
					})
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, d := range drifts {
		slog.Warn("inventory counter drift",
			"flight_id", d.FlightID, "seat_class", d.Class,
			"available", d.Available, "expected", d.Expected)
	}
	return drifts, nil
}

func (s *BookingService) acquireSubmitLocks(ctx context.Context, flightID int64, passengers []PassengerInput) ([]string, error) {
	if s.cache == nil {
		return nil, nil
	}
	var locked []string
	for _, p := range passengers {
		ok, err := s.cache.AcquireSubmitLock(ctx, flightID, p.PassportNumber, s.submitLockTTL)
		if err != nil {
			s.releaseSubmitLocks(ctx, flightID, locked)
			return nil, err
		}
		if !ok {
			s.releaseSubmitLocks(ctx, flightID, locked)
			return nil, fmt.Errorf("booking for passport %s already in progress", p.PassportNumber)
		}
		locked = append(locked, p.PassportNumber)
	}
	return locked, nil
}

func (s *BookingService) releaseSubmitLocks(ctx context.Context, flightID int64, passports []string) {
	if s.cache == nil {
		return
	}
	for _, passport := range passports {
		if err := s.cache.ReleaseSubmitLock(ctx, flightID, passport); err != nil {
			slog.Warn("release submit lock", "flight_id", flightID, "error", err)
		}
	}
}

func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, b *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := BookingEvent{
		Type:       eventType,
		Reference:  b.Reference,
		BookingID:  b.ID,
		FlightID:   b.FlightID,
		SeatClass:  string(b.SeatClass),
		SeatLabel:  b.SeatLabel(),
		FareCents:  b.FareCents,
		Status:     string(b.Status),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, b.Reference, event); err != nil {
		slog.Error("publish booking event", "type", eventType, "reference", b.Reference, "error", err)
	}
}

func (s *BookingService) publishFlightCancelled(ctx context.Context, flightID int64) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := BookingEvent{
		Type:       EventFlightCancelled,
		FlightID:   flightID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, fmt.Sprintf("flight-%d", flightID), event); err != nil {
		slog.Error("publish flight cancelled event", "flight_id", flightID, "error", err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
