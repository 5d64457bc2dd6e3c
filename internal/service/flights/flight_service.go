// Package flights serves read-only flight data to the presentation layer,
// fronted by a short-lived cache.
package flights

import (
	"context"

	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/domain"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

// Cache holds the serialized flight list. Availability counters in the cache
// may lag the database; the booking engine never reads them from here.
type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

type FlightService struct {
	db    repository.Querier
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(db repository.Querier, repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{db: db, repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, s.db, id)
}

var _ FlightUseCase = (*FlightService)(nil)
