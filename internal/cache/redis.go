// Package cache is the Redis layer: a TTL cache for the flight list and
// short-lived submit locks that shed duplicate booking submissions before
// they reach the database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mfar201/flight-ticket-booking-system-sub000/config"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/domain"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey()).Err()
}

// AcquireSubmitLock is a best-effort guard against double submits for the
// same passport on the same flight. The database's partial unique index is
// the authoritative check.
func (c *RedisCache) AcquireSubmitLock(ctx context.Context, flightID int64, passport string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, submitLockKey(flightID, passport), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSubmitLock(ctx context.Context, flightID int64, passport string) error {
	return c.client.Del(ctx, submitLockKey(flightID, passport)).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func flightsKey() string {
	return "cache:flights"
}

func submitLockKey(flightID int64, passport string) string {
	return fmt.Sprintf("lock:flight:%d:passport:%s", flightID, passport)
}
