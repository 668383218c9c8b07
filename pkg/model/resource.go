package model

import "time"

// Resource is a bookable asset (room, equipment). Name is unique across
// the catalog; identity is immutable once created.
type Resource struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type ResourceUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}
