package common

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/logging"

	"github.com/redis/go-redis/v9"
)

// BookingEvent is appended to the booking stream on every lifecycle change.
type BookingEvent struct {
	Type      string                  `json:"type"`
	BookingID string                  `json:"booking_id"`
	UserID    string                  `json:"user_id"`
	Status    constants.BookingStatus `json:"status"`
	Price     int64                   `json:"price"`
	ActorID   string                  `json:"actor_id,omitempty"`
	At        time.Time               `json:"at"`
}

const (
	EventBookingCreated       = "booking.created"
	EventBookingUpdated       = "booking.updated"
	EventBookingStatusChanged = "booking.status_changed"
)

// EventPublisher fans booking events out to downstream consumers.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event BookingEvent) error
}

// RedisQueueService publishes events to a Redis stream
type RedisQueueService struct {
	client *redis.Client
	stream string
}

var _ EventPublisher = (*RedisQueueService)(nil)

func NewRedisQueueService(client *redis.Client, stream string) *RedisQueueService {
	return &RedisQueueService{client: client, stream: stream}
}

// PublishBookingEvent runs XADD <stream> * data <json>
func (s *RedisQueueService) PublishBookingEvent(ctx context.Context, event BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: 10000,
		Approx: true,
		Values: map[string]interface{}{
			"type": event.Type,
			"data": string(data),
		},
	}
	if _, err := s.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}
	return nil
}

// LogEventPublisher is used when no Redis is configured.
type LogEventPublisher struct{}

var _ EventPublisher = LogEventPublisher{}

func (LogEventPublisher) PublishBookingEvent(_ context.Context, event BookingEvent) error {
	logging.Info("Booking event",
		"type", event.Type,
		"booking_id", event.BookingID,
		"status", event.Status,
		"actor_id", event.ActorID,
	)
	return nil
}
