package kafka_config

import (
	"fmt"
	"time"
)

// Config carries broker and tuning settings shared by the producer and
// consumer wrappers.
type Config struct {
	Brokers []string

	ProducerRequireAcks  int
	ProducerMaxAttempts  int
	ProducerBatchTimeout time.Duration
	ProducerAsync        bool

	ConsumerMinBytes          int
	ConsumerMaxBytes          int
	ConsumerMaxWait           time.Duration
	ConsumerCommitInterval    time.Duration
	ConsumerHeartbeatInterval time.Duration
	ConsumerSessionTimeout    time.Duration
	ConsumerRebalanceTimeout  time.Duration
	ConsumerMaxRetries        int
}

func New(brokers []string) *Config {
	return &Config{
		Brokers: brokers,

		ProducerRequireAcks:  DefaultProducerRequireAcks,
		ProducerMaxAttempts:  DefaultProducerMaxAttempts,
		ProducerBatchTimeout: DefaultProducerBatchTimeout,

		ConsumerMinBytes:          DefaultConsumerMinBytes,
		ConsumerMaxBytes:          DefaultConsumerMaxBytes,
		ConsumerMaxWait:           DefaultConsumerMaxWait,
		ConsumerCommitInterval:    DefaultConsumerCommitInterval,
		ConsumerHeartbeatInterval: DefaultConsumerHeartbeatInterval,
		ConsumerSessionTimeout:    DefaultConsumerSessionTimeout,
		ConsumerRebalanceTimeout:  DefaultConsumerRebalanceTimeout,
		ConsumerMaxRetries:        DefaultConsumerMaxRetries,
	}
}

func (c *Config) Validate() error {
	if len(c.Brokers) == 0 {
		return fmt.Errorf("at least one broker is required")
	}
	if c.ConsumerMaxRetries < 0 {
		return fmt.Errorf("consumer max retries cannot be negative")
	}
	return nil
}
