package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-leave/internal/leave"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/messaging/kafka/producer"
	"go-leave/internal/notify"
	"go-leave/internal/reminder"
	"go-leave/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker runs the outbox publisher plus the periodic transition plan
// reminder sweep.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	leaveRepo := leave.NewRepository(gormDB)
	dispatcher := notify.NewOutboxDispatcher(outboxRepo)
	reminderService := reminder.NewService(leaveRepo, dispatcher)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go runReminderSweep(ctx, reminderService, reminderSweepInterval(), logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

func reminderSweepInterval() time.Duration {
	if raw := os.Getenv("REMINDER_SWEEP_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
	}
	return 24 * time.Hour
}

func runReminderSweep(
	ctx context.Context,
	service reminder.Service,
	interval time.Duration,
	logger *zap.Logger,
) {
	log := logger.Named("reminder.sweep")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("reminder sweep started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			log.Info("reminder sweep stopped")
			return
		case <-ticker.C:
			sent, err := service.SendReminders(ctx, time.Now().UTC(), reminder.DefaultWindowDays)
			if err != nil {
				log.Error("reminder sweep failed", zap.Error(err))
				continue
			}
			if sent > 0 {
				log.Info("transition plan reminders queued", zap.Int("sent", sent))
			}
		}
	}
}
