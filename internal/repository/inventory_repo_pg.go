package repository

import (
	"context"
	"fmt"

	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/domain"
)

// InventoryRepository mutates the per-flight, per-class availability
// counters. TryReserve is the only way a counter goes down and Release the
// only way it goes up.
type InventoryRepository interface {
	TryReserve(ctx context.Context, q Querier, flightID int64, class domain.SeatClass, count int) error
	Release(ctx context.Context, q Querier, flightID int64, class domain.SeatClass, count int) error
}

type PGInventoryRepository struct{}

func NewInventoryRepository() *PGInventoryRepository {
	return &PGInventoryRepository{}
}

// availableColumn maps the seat-class enum onto its counter column. The
// column name never comes from request input.
func availableColumn(class domain.SeatClass) (string, error) {
	switch class {
	case domain.SeatClassEconomy:
		return "economy_available", nil
	case domain.SeatClassBusiness:
		return "business_available", nil
	case domain.SeatClassFirstClass:
		return "first_available", nil
	}
	return "", domain.ErrInvalidSeatClass
}

// TryReserve decrements the counter in a single conditional UPDATE: the read
// and the write are one statement, so two racing reservations on the same
// flight serialize on the row lock and the counter can never go negative.
// Zero rows affected means the class is sold out.
func (r *PGInventoryRepository) TryReserve(ctx context.Context, q Querier, flightID int64, class domain.SeatClass, count int) error {
	col, err := availableColumn(class)
	if err != nil {
		return err
	}
	sql := fmt.Sprintf(`UPDATE flights SET %[1]s = %[1]s - $2, updated_at = now() WHERE id = $1 AND %[1]s >= $2`, col)
	cmd, err := q.Exec(ctx, sql, flightID, count)
	if err != nil {
		return fmt.Errorf("reserve %s seats on flight %d: %w", class, flightID, err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.InsufficientInventoryError{FlightID: flightID, Class: class}
	}
	return nil
}

// Release is unconditional: callers only ever return seats they previously
// reserved, so no upper bound is checked here.
func (r *PGInventoryRepository) Release(ctx context.Context, q Querier, flightID int64, class domain.SeatClass, count int) error {
	col, err := availableColumn(class)
	if err != nil {
		return err
	}
	sql := fmt.Sprintf(`UPDATE flights SET %[1]s = %[1]s + $2, updated_at = now() WHERE id = $1`, col)
	cmd, err := q.Exec(ctx, sql, flightID, count)
	if err != nil {
		return fmt.Errorf("release %s seats on flight %d: %w", class, flightID, err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "flight", ID: flightID}
	}
	return nil
}

var _ InventoryRepository = (*PGInventoryRepository)(nil)
