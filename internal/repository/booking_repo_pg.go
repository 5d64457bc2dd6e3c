package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/domain"
)

// Names of the partial unique indexes that guard active bookings.
// See migrations/schema.sql.
const (
	activePassengerIndex = "bookings_one_active_per_passenger"
	activeSeatIndex      = "bookings_one_active_per_seat"
)

// ActiveCount is one (flight, class) bucket of active bookings, used by the
// inventory reconciliation sweep.
type ActiveCount struct {
	FlightID int64
	Class    domain.SeatClass
	Count    int
}

// BookingRepository is the authoritative booking ledger.
type BookingRepository interface {
	Insert(ctx context.Context, q Querier, b *domain.Booking) error
	GetByID(ctx context.Context, q Querier, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, q Querier, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, q Querier, id int64, status domain.BookingStatus) error
	ActiveSeatNumbers(ctx context.Context, q Querier, flightID int64, class domain.SeatClass) ([]int, error)
	CountActiveForPassport(ctx context.Context, q Querier, flightID int64, passport string) (int, error)
	CountActiveForUser(ctx context.Context, q Querier, flightID, userID int64) (int, error)
	ListActiveByFlightForUpdate(ctx context.Context, q Querier, flightID int64) ([]domain.Booking, error)
	ListByFlight(ctx context.Context, q Querier, flightID int64, status *domain.BookingStatus) ([]domain.Booking, error)
	ListByUser(ctx context.Context, q Querier, userID int64, page, pageSize int) ([]domain.Booking, error)
	ActiveCountsByClass(ctx context.Context, q Querier) ([]ActiveCount, error)
}

type PGBookingRepository struct{}

func NewBookingRepository() *PGBookingRepository {
	return &PGBookingRepository{}
}

const bookingColumns = `id, reference, flight_id, passenger_id, user_id, seat_class, seat_number, fare_cents, status, created_at, updated_at`

func scanBooking(row pgx.Row, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.Reference, &b.FlightID, &b.PassengerID, &b.UserID,
		&b.SeatClass, &b.SeatNumber, &b.FareCents, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}

func (r *PGBookingRepository) Insert(ctx context.Context, q Querier, b *domain.Booking) error {
	err := q.QueryRow(ctx, `
		INSERT INTO bookings (reference, flight_id, passenger_id, user_id, seat_class, seat_number, fare_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		b.Reference, b.FlightID, b.PassengerID, b.UserID, b.SeatClass, b.SeatNumber, b.FareCents, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case activePassengerIndex:
				return ErrDuplicateActiveBooking
			case activeSeatIndex:
				return ErrSeatTaken
			}
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, q Querier, id int64) (*domain.Booking, error) {
	return r.get(ctx, q, id, "")
}

func (r *PGBookingRepository) GetByIDForUpdate(ctx context.Context, q Querier, id int64) (*domain.Booking, error) {
	return r.get(ctx, q, id, " FOR UPDATE")
}

func (r *PGBookingRepository) get(ctx context.Context, q Querier, id int64, suffix string) (*domain.Booking, error) {
	row := q.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`+suffix, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "booking", ID: id}
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, q Querier, id int64, status domain.BookingStatus) error {
	cmd, err := q.Exec(ctx, `UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update booking %d status: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "booking", ID: id}
	}
	return nil
}

// ActiveSeatNumbers returns the seat numbers held by non-cancelled bookings
// for a flight and class. Callers run it inside the booking transaction,
// after TryReserve has locked the flight row.
func (r *PGBookingRepository) ActiveSeatNumbers(ctx context.Context, q Querier, flightID int64, class domain.SeatClass) ([]int, error) {
	rows, err := q.Query(ctx, `
		SELECT seat_number FROM bookings
		WHERE flight_id = $1 AND seat_class = $2 AND status IN ('PENDING', 'CONFIRMED')
		ORDER BY seat_number`, flightID, class)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

func (r *PGBookingRepository) CountActiveForPassport(ctx context.Context, q Querier, flightID int64, passport string) (int, error) {
	var n int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM bookings b
		JOIN passengers p ON p.id = b.passenger_id
		WHERE b.flight_id = $1 AND p.passport_number = $2 AND b.status IN ('PENDING', 'CONFIRMED')`,
		flightID, passport).Scan(&n)
	return n, err
}

func (r *PGBookingRepository) CountActiveForUser(ctx context.Context, q Querier, flightID, userID int64) (int, error) {
	var n int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE flight_id = $1 AND user_id = $2 AND status IN ('PENDING', 'CONFIRMED')`,
		flightID, userID).Scan(&n)
	return n, err
}

// ListActiveByFlightForUpdate locks the active bookings of a flight for the
// cascade-cancellation transaction.
func (r *PGBookingRepository) ListActiveByFlightForUpdate(ctx context.Context, q Querier, flightID int64) ([]domain.Booking, error) {
	rows, err := q.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE flight_id = $1 AND status IN ('PENDING', 'CONFIRMED')
		ORDER BY id
		FOR UPDATE`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListByFlight(ctx context.Context, q Querier, flightID int64, status *domain.BookingStatus) ([]domain.Booking, error) {
	sql := `SELECT ` + bookingColumns + ` FROM bookings WHERE flight_id = $1`
	args := []any{flightID}
	if status != nil {
		sql += ` AND status = $2`
		args = append(args, *status)
	}
	sql += ` ORDER BY seat_class, seat_number`

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, q Querier, userID int64, page, pageSize int) ([]domain.Booking, error) {
	if page < 1 {
		page = 1
	}
	rows, err := q.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) ActiveCountsByClass(ctx context.Context, q Querier) ([]ActiveCount, error) {
	rows, err := q.Query(ctx, `
		SELECT flight_id, seat_class, COUNT(*) FROM bookings
		WHERE status IN ('PENDING', 'CONFIRMED')
		GROUP BY flight_id, seat_class
		ORDER BY flight_id, seat_class`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []ActiveCount
	for rows.Next() {
		var c ActiveCount
		if err := rows.Scan(&c.FlightID, &c.Class, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
