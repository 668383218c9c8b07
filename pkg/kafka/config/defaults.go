package kafka_config

import "time"

const (
	DefaultProducerRequireAcks  = -1 // all replicas
	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 100 * time.Millisecond

	DefaultConsumerMinBytes          = 1
	DefaultConsumerMaxBytes          = 10 << 20
	DefaultConsumerMaxWait           = 500 * time.Millisecond
	DefaultConsumerCommitInterval    = time.Second
	DefaultConsumerHeartbeatInterval = 3 * time.Second
	DefaultConsumerSessionTimeout    = 30 * time.Second
	DefaultConsumerRebalanceTimeout  = 30 * time.Second
	DefaultConsumerMaxRetries        = 3
)
