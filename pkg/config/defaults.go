package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "resbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultJWTTTL = 24 * time.Hour

	DefaultBookingEventsTopic = "resbook.booking-events"
	DefaultAuditGroupID       = "resbook-audit"

	// DefaultLockTTL bounds how long an orphaned resource lock can block
	// bookings after a crashed request.
	DefaultLockTTL = 10 * time.Second

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = time.Minute

	DefaultRequestTimeout  = 15 * time.Second
	DefaultMaxRequestSize  = 1 << 20 // 1 MiB
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 20 * time.Second

	DefaultPaginationLimit = 20
	MaxPaginationLimit     = 100

	DefaultAdminEmail = "admin@resbook.io"
)

// NormalizePaginationLimit clamps a requested page size into [1, MaxPaginationLimit].
func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		return DefaultPaginationLimit
	}
	if limit > MaxPaginationLimit {
		return MaxPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	if offset < 0 {
		return 0
	}
	return offset
}
