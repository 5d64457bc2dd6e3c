package flights

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/domain"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/repository"
)

type mockFlightRepo struct {
	mock.Mock
}

func (m *mockFlightRepo) List(ctx context.Context, q repository.Querier) ([]domain.Flight, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *mockFlightRepo) GetByID(ctx context.Context, q repository.Querier, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *mockFlightRepo) GetByIDForUpdate(ctx context.Context, q repository.Querier, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *mockFlightRepo) SetStatus(ctx context.Context, q repository.Querier, id int64, status domain.FlightStatus) error {
	args := m.Called(ctx, q, id, status)
	return args.Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *mockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func TestListCacheHit(t *testing.T) {
	repo := new(mockFlightRepo)
	cache := new(mockCache)
	cached := []domain.Flight{{ID: 1, FlightNumber: "BK101"}}
	cache.On("GetFlights", mock.Anything).Return(cached, nil).Once()

	svc := NewFlightService(nil, repo, cache)
	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, cached, got)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestListCacheMissFillsCache(t *testing.T) {
	repo := new(mockFlightRepo)
	cache := new(mockCache)
	flights := []domain.Flight{{ID: 1}, {ID: 2}}
	cache.On("GetFlights", mock.Anything).Return(nil, nil).Once()
	repo.On("List", mock.Anything, mock.Anything).Return(flights, nil).Once()
	cache.On("SetFlights", mock.Anything, flights).Return(nil).Once()

	svc := NewFlightService(nil, repo, cache)
	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, flights, got)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestListCacheErrorFallsThrough(t *testing.T) {
	repo := new(mockFlightRepo)
	cache := new(mockCache)
	flights := []domain.Flight{{ID: 3}}
	cache.On("GetFlights", mock.Anything).Return(nil, errors.New("redis down")).Once()
	repo.On("List", mock.Anything, mock.Anything).Return(flights, nil).Once()
	cache.On("SetFlights", mock.Anything, flights).Return(nil).Once()

	svc := NewFlightService(nil, repo, cache)
	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, flights, got)
}

func TestListWithoutCache(t *testing.T) {
	repo := new(mockFlightRepo)
	flights := []domain.Flight{{ID: 4}}
	repo.On("List", mock.Anything, mock.Anything).Return(flights, nil).Once()

	svc := NewFlightService(nil, repo, nil)
	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, flights, got)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := new(mockFlightRepo)
	repo.On("GetByID", mock.Anything, mock.Anything, int64(99)).
		Return(nil, &domain.NotFoundError{Entity: "flight", ID: 99}).Once()

	svc := NewFlightService(nil, repo, nil)
	_, err := svc.GetByID(context.Background(), 99)

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(99), notFound.ID)
}
