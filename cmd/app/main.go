package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfar201/flight-ticket-booking-system-sub000/api"
	"github.com/mfar201/flight-ticket-booking-system-sub000/config"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/bootstrap"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/cache"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/kafka"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/logger"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/repository"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/service/booking"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/service/flights"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("load config", "path", configPath, "error", err)
		os.Exit(1)
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		slog.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		slog.Error("ping postgres", "error", err)
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.FlightsCacheTTL)
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	txRunner := repository.NewTxRunner(pool)
	bookingRepo := repository.NewBookingRepository()
	flightRepo := repository.NewFlightRepository()
	passengerRepo := repository.NewPassengerRepository()
	inventoryRepo := repository.NewInventoryRepository()

	bookingSvc := booking.NewBookingService(
		txRunner, bookingRepo, flightRepo, passengerRepo, inventoryRepo,
		redisCache, producer,
		cfg.Kafka.BookingTopic, cfg.Booking.SubmitLockTTL,
		booking.WithMaxActivePerUser(cfg.Booking.MaxActivePerUser),
	)
	flightSvc := flights.NewFlightService(pool, flightRepo, redisCache)

	router := api.NewRouter(
		api.NewBookingHandler(bookingSvc),
		api.NewFlightHandler(flightSvc, bookingSvc),
	)

	if err := bootstrap.Run(ctx, cfg.HTTP, router); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped cleanly")
}
