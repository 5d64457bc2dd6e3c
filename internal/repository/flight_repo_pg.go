package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/domain"
)

type FlightRepository interface {
	List(ctx context.Context, q Querier) ([]domain.Flight, error)
	GetByID(ctx context.Context, q Querier, id int64) (*domain.Flight, error)
	GetByIDForUpdate(ctx context.Context, q Querier, id int64) (*domain.Flight, error)
	SetStatus(ctx context.Context, q Querier, id int64, status domain.FlightStatus) error
}

type PGFlightRepository struct{}

func NewFlightRepository() *PGFlightRepository {
	return &PGFlightRepository{}
}

const flightColumns = `id, flight_number, origin, destination, departure_time, arrival_time, status,
	economy_capacity, business_capacity, first_capacity,
	economy_available, business_available, first_available,
	economy_price_cents, business_price_cents, first_price_cents,
	created_at, updated_at`

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(
		&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.Status,
		&f.EconomyCapacity, &f.BusinessCapacity, &f.FirstCapacity,
		&f.EconomyAvailable, &f.BusinessAvailable, &f.FirstAvailable,
		&f.EconomyPriceCents, &f.BusinessPriceCents, &f.FirstPriceCents,
		&f.CreatedAt, &f.UpdatedAt,
	)
}

func (r *PGFlightRepository) List(ctx context.Context, q Querier) ([]domain.Flight, error) {
	rows, err := q.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, q Querier, id int64) (*domain.Flight, error) {
	return r.get(ctx, q, id, "")
}

// GetByIDForUpdate locks the flight row for the rest of the transaction.
// Cascade cancellation takes this lock first so it cannot interleave with a
// concurrent booking on the same flight.
func (r *PGFlightRepository) GetByIDForUpdate(ctx context.Context, q Querier, id int64) (*domain.Flight, error) {
	return r.get(ctx, q, id, " FOR UPDATE")
}

func (r *PGFlightRepository) get(ctx context.Context, q Querier, id int64, suffix string) (*domain.Flight, error) {
	row := q.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id = $1`+suffix, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "flight", ID: id}
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) SetStatus(ctx context.Context, q Querier, id int64, status domain.FlightStatus) error {
	cmd, err := q.Exec(ctx, `UPDATE flights SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set flight %d status: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "flight", ID: id}
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
