// The worker consumes booking events for passenger notifications and
// periodically audits the availability counters against the ledger.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	segkafka "github.com/segmentio/kafka-go"

	"github.com/mfar201/flight-ticket-booking-system-sub000/config"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/email"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/kafka"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/logger"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/repository"
	"github.com/mfar201/flight-ticket-booking-system-sub000/internal/service/booking"
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

	svc := booking.NewBookingService(
		repository.NewTxRunner(pool),
		repository.NewBookingRepository(),
		repository.NewFlightRepository(),
		repository.NewPassengerRepository(),
		repository.NewInventoryRepository(),
		nil, nil, "", 0,
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingTopic)
	defer consumer.Close()
	sender := email.NewSender()

	go func() {
		err := consumer.Consume(ctx, func(ctx context.Context, msg segkafka.Message) error {
			var event booking.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				slog.Error("decode booking event", "error", err)
				return nil
			}
			if err := sender.Send(ctx, event); err != nil {
				slog.Error("send notification", "reference", event.Reference, "error", err)
			}
			return nil
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("consumer stopped", "error", err)
		}
	}()

	slog.Info("worker started", "reconcile_interval", cfg.Worker.ReconcileInterval)
	ticker := time.NewTicker(cfg.Worker.ReconcileInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("worker stopped")
			return
		case <-ticker.C:
			drifts, err := svc.ReconcileInventory(ctx)
			if err != nil {
				slog.Error("reconcile inventory", "error", err)
				continue
			}
			slog.Info("inventory reconciliation complete", "drifts", len(drifts))
		}
	}
}
