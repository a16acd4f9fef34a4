package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"huduma/config"
	bookingRepo "huduma/database/repository/booking"
	"huduma/models"
	"huduma/services/booking"
	"huduma/services/notification"
	"huduma/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitBookingWorker runs the async worker in background. It handles the
// scheduled reminder and expiry tasks enqueued at order creation.
func InitBookingWorker(bookings bookingRepo.BookingRepository, bookingSvc booking.BookingService, notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, handleReminderTask(bookings, notifSvc))
	mux.HandleFunc(tasks.TypeBookingExpire, handleExpiryTask(bookings, bookingSvc))

	go monitorRedisConnection()

	go func() {
		log.Println("[BookingWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[BookingWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[BookingWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleReminderTask notifies the customer about an upcoming booking. The
// reminder is skipped when the booking was cancelled or already completed
// by the time the task fires.
func handleReminderTask(bookings bookingRepo.BookingRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		b, err := bookings.GetByID(p.BookingID)
		if err != nil {
			return err
		}
		if b == nil || models.IsTerminalBookingStatus(b.Status) {
			log.Printf("[ReminderHandler] booking %s no longer live, skipping reminder", p.BookingID)
			return nil
		}

		notifSvc.Notify(ctx, p.CustomerID, p.Message, notification.TypeBookingReminder)
		return nil
	}
}

// handleExpiryTask cancels a booking that is still pending and unpaid when
// its scheduled slot has passed. Any other state means the booking moved on
// and the task is a no-op.
func handleExpiryTask(bookings bookingRepo.BookingRepository, bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ExpiryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryHandler] invalid payload: %v", err)
			return err
		}

		b, err := bookings.GetByID(p.BookingID)
		if err != nil {
			return err
		}
		if b == nil || b.Status != models.BookingStatusPending || b.PaymentStatus != models.PaymentStatusUnpaid {
			return nil
		}

		if _, err := bookingSvc.UpdateStatus(ctx, p.BookingID, models.BookingStatusCancelled); err != nil {
			log.Printf("[ExpiryHandler] failed to expire booking %s: %v", p.BookingID, err)
			return err
		}
		log.Printf("[ExpiryHandler] expired unpaid booking %s", p.BookingID)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[BookingWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
