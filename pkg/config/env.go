package config

// Environment variable names shared by all binaries.
const (
	EnvMongoURI          = "RESBOOK_MONGO_URI"
	EnvMongoDatabaseName = "RESBOOK_MONGO_DATABASE"
	EnvMongoConnTimeout  = "RESBOOK_MONGO_CONN_TIMEOUT"

	EnvPort     = "RESBOOK_PORT"
	EnvLogLevel = "RESBOOK_LOG_LEVEL"

	EnvJWTSecret = "RESBOOK_JWT_SECRET"
	EnvJWTTTL    = "RESBOOK_JWT_TTL"

	EnvKafkaBrokers       = "RESBOOK_KAFKA_BROKERS"
	EnvBookingEventsTopic = "RESBOOK_BOOKING_EVENTS_TOPIC"
	EnvAuditGroupID       = "RESBOOK_AUDIT_GROUP_ID"

	EnvLockTTL = "RESBOOK_RESOURCE_LOCK_TTL"

	EnvRateLimitRequests = "RESBOOK_RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RESBOOK_RATE_LIMIT_WINDOW"

	EnvRequestTimeout  = "RESBOOK_REQUEST_TIMEOUT"
	EnvMaxRequestSize  = "RESBOOK_MAX_REQUEST_SIZE"
	EnvReadTimeout     = "RESBOOK_READ_TIMEOUT"
	EnvWriteTimeout    = "RESBOOK_WRITE_TIMEOUT"
	EnvIdleTimeout     = "RESBOOK_IDLE_TIMEOUT"
	EnvShutdownTimeout = "RESBOOK_SHUTDOWN_TIMEOUT"

	EnvAdminEmail    = "RESBOOK_ADMIN_EMAIL"
	EnvAdminPassword = "RESBOOK_ADMIN_PASSWORD"
)
