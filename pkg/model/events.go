package model

import "time"

// Booking lifecycle event types published to the audit stream.
const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is the payload published after a committed lifecycle change.
// Publishing is best-effort and never affects the request outcome.
type BookingEvent struct {
	EventType  string    `json:"event_type"`
	BookingID  string    `json:"booking_id"`
	ResourceID string    `json:"resource_id"`
	OwnerID    string    `json:"owner_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AuditEntry is the durable record the audit consumer derives from a
// BookingEvent.
type AuditEntry struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty"`
	EventID    string    `json:"event_id" bson:"event_id"`
	EventType  string    `json:"event_type" bson:"event_type"`
	BookingID  string    `json:"booking_id" bson:"booking_id"`
	ResourceID string    `json:"resource_id" bson:"resource_id"`
	OwnerID    string    `json:"owner_id" bson:"owner_id"`
	StartTime  time.Time `json:"start_time" bson:"start_time"`
	EndTime    time.Time `json:"end_time" bson:"end_time"`
	OccurredAt time.Time `json:"occurred_at" bson:"occurred_at"`
	RecordedAt time.Time `json:"recorded_at" bson:"recorded_at"`
}
