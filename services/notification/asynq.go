package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"velora/models"

	"github.com/hibiken/asynq"
)

// AsynqNotificationService is the production implementation, backed by the
// redis task queue. The cron worker consumes the tasks and hands them to the
// delivery gateway.
type AsynqNotificationService struct {
	client *asynq.Client
}

// NewAsynqNotificationService constructs the queue-backed dispatcher.
func NewAsynqNotificationService(redisOpt asynq.RedisClientOpt) *AsynqNotificationService {
	return &AsynqNotificationService{client: asynq.NewClient(redisOpt)}
}

func (s *AsynqNotificationService) EnqueueBookingEvent(ctx context.Context, payload models.BookingEventPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}
	task := asynq.NewTask(TypeBookingEvent, data)
	if _, err := s.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue booking event: %w", err)
	}
	return nil
}

// Close releases the underlying queue client.
func (s *AsynqNotificationService) Close() error {
	return s.client.Close()
}
