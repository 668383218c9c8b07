package events

import (
	"context"
	"time"

	"resbook/pkg/kafka"
	"resbook/pkg/logger"
	"resbook/pkg/model"
)

// EventPublisher emits booking lifecycle events after a committed write.
// Publishing is best-effort: the caller logs a failure and moves on, it
// never rolls back the booking.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event *model.BookingEvent) error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) EventPublisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *kafkaPublisher) PublishBookingEvent(ctx context.Context, event *model.BookingEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	// Keyed by booking ID so each booking's events stay ordered within a
	// partition.
	msg := kafka.NewMessage().
		WithKey(event.BookingID).
		WithValue(event).
		WithEventType(event.EventType).
		WithSource("resbook.bookings").
		Build()

	return p.producer.Publish(ctx, msg)
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that drops events. Used when Kafka
// is not configured.
func NewNopPublisher() EventPublisher {
	return nopPublisher{}
}

func (nopPublisher) PublishBookingEvent(context.Context, *model.BookingEvent) error {
	return nil
}
