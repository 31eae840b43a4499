package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"velora/config"
	holdRepo "velora/database/repository/hold"
	"velora/models"
	"velora/services/notification"

	"github.com/hibiken/asynq"
)

// InitEventWorker runs the async worker in background. It drains the booking
// event queue; actual delivery transports hang off this handler.
func InitEventWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
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
	mux.HandleFunc(notification.TypeBookingEvent, handleBookingEvent)

	// Start async worker with retry logic
	go func() {
		log.Println("[EventWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[EventWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[EventWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleBookingEvent(ctx context.Context, task *asynq.Task) error {
	var p models.BookingEventPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		log.Printf("[EventHandler] 🔴 Invalid payload: %v", err)
		return err
	}

	log.Printf("[EventHandler] 📅 %s booking %s (client %s, professional %s) now %s",
		p.Event, p.BookingID, p.ClientID, p.ProfessionalID, p.Status)
	return nil
}

// StartHoldSweeper deletes expired holds on an interval. The TTL index on
// the holds collection does the real expiry; this sweep covers deployments
// where the index is missing or lagging, and logs how much it reclaimed.
func StartHoldSweeper(repo holdRepo.HoldRepository, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			removed, err := repo.DeleteExpired(ctx)
			cancel()
			if err != nil {
				log.Printf("[HoldSweeper] ⚠️ Failed to sweep expired holds: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("[HoldSweeper] 🧹 Removed %d expired holds", removed)
			}
		}
	}()
}
