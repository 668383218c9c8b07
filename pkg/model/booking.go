package model

import (
	"time"

	"resbook/pkg/interval"
)

// Booking reserves one resource for one owner over [StartTime, EndTime).
// CreatedAt is server-assigned once and never changes.
type Booking struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ResourceID string    `json:"resource_id" bson:"resource_id" validate:"required,mongodb"`
	OwnerID    string    `json:"owner_id" bson:"owner_id" validate:"required,mongodb"`
	OwnerEmail string    `json:"owner_email,omitempty" bson:"owner_email,omitempty"`
	StartTime  time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

func (b *Booking) Interval() interval.Interval {
	return interval.New(b.StartTime, b.EndTime)
}

// BookingRequest is the create/update payload. Both operations replace the
// resource and the full interval, matching update-in-place semantics.
type BookingRequest struct {
	ResourceID string    `json:"resource_id" validate:"required,mongodb"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}
