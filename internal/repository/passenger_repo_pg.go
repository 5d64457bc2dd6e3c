package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/domain"
)

type PassengerRepository interface {
	GetOrCreate(ctx context.Context, q Querier, p *domain.Passenger) error
}

type PGPassengerRepository struct{}

func NewPassengerRepository() *PGPassengerRepository {
	return &PGPassengerRepository{}
}

// GetOrCreate inserts the passenger or, when the passport number already
// exists, loads the existing row. Existing passengers are never updated from
// the booking flow.
func (r *PGPassengerRepository) GetOrCreate(ctx context.Context, q Querier, p *domain.Passenger) error {
	p.PassportNumber = domain.NormalizePassport(p.PassportNumber)

	err := q.QueryRow(ctx, `
		INSERT INTO passengers (first_name, last_name, passport_number, nationality, gender, phone, date_of_birth)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (passport_number) DO NOTHING
		RETURNING id, created_at`,
		p.FirstName, p.LastName, p.PassportNumber, p.Nationality, p.Gender, p.Phone, p.DateOfBirth,
	).Scan(&p.ID, &p.CreatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("create passenger %s: %w", p.PassportNumber, err)
	}

	// Conflict: the passport is already on file, reuse that passenger.
	row := q.QueryRow(ctx, `
		SELECT id, first_name, last_name, passport_number, nationality, gender, phone, date_of_birth, created_at
		FROM passengers WHERE passport_number = $1`, p.PassportNumber)
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.PassportNumber, &p.Nationality, &p.Gender, &p.Phone, &p.DateOfBirth, &p.CreatedAt); err != nil {
		return fmt.Errorf("load passenger %s: %w", p.PassportNumber, err)
	}
	return nil
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
