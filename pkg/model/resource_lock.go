package model

import "time"

// ResourceLock is an advisory lock serializing the conflict check and the
// subsequent write for a single resource. The _id is derived from the
// resource id, so a second acquire fails on the unique index. ExpiresAt is
// a TTL safety net for locks orphaned by a crashed request.
type ResourceLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
