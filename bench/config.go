// Package bench is a load generator for MQTT v5.0 brokers. It drives
// configurable fleets of publishers and subscribers over raw connections,
// timestamps every message, and reports throughput and trip-time
// percentiles.
package bench

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vitalvas/mqttwire"
)

// DelayMode selects how a publisher paces its messages.
type DelayMode int

const (
	// DelayNone sends messages back to back.
	DelayNone DelayMode = iota
	// DelayConstant sleeps a fixed duration between messages.
	DelayConstant
	// DelayRandom sleeps a uniformly random duration in [Min, Max].
	DelayRandom
)

// Delay describes the pacing discipline for publishers.
type Delay struct {
	Mode     DelayMode
	Constant time.Duration
	Min      time.Duration
	Max      time.Duration
}

// ParseDelayRange parses a "min:max" duration pair such as "1ms:10ms".
func ParseDelayRange(s string) (Delay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Delay{}, fmt.Errorf("invalid delay range %q: want min:max", s)
	}
	minD, err := time.ParseDuration(parts[0])
	if err != nil {
		return Delay{}, fmt.Errorf("invalid delay range %q: %w", s, err)
	}
	maxD, err := time.ParseDuration(parts[1])
	if err != nil {
		return Delay{}, fmt.Errorf("invalid delay range %q: %w", s, err)
	}
	if maxD < minD {
		return Delay{}, fmt.Errorf("invalid delay range %q: max below min", s)
	}
	return Delay{Mode: DelayRandom, Min: minD, Max: maxD}, nil
}

// Config holds the benchmark parameters.
type Config struct {
	// Endpoint is the broker address, either host:port or a URL with a
	// tcp, tls, or quic scheme.
	Endpoint string

	// Topic is the topic every publisher publishes to and every
	// subscriber subscribes to.
	Topic string

	// Publishers is the number of concurrent publisher connections.
	Publishers int

	// Subscribers is the number of concurrent subscriber connections.
	Subscribers int

	// Messages is the number of messages each publisher sends.
	Messages int

	// QoS is the quality of service for published messages.
	QoS mqttwire.QoS

	// Delay is the publisher pacing discipline.
	Delay Delay

	// Logger receives progress output. Nil disables logging.
	Logger mqttwire.Logger
}

// DefaultConfig returns the default benchmark parameters.
func DefaultConfig() Config {
	return Config{
		Endpoint:    "0.0.0.0:1883",
		Topic:       "/benchmark/stress_test",
		Publishers:  10,
		Subscribers: 10,
		Messages:    1000,
		QoS:         mqttwire.QoSAtMostOnce,
		Delay:       Delay{Mode: DelayConstant, Constant: time.Millisecond},
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("endpoint must not be empty")
	}
	if c.Topic == "" {
		return errors.New("topic must not be empty")
	}
	if c.Publishers < 1 {
		return errors.New("at least one publisher required")
	}
	if c.Subscribers < 1 {
		return errors.New("at least one subscriber required")
	}
	if c.Messages < 1 {
		return errors.New("at least one message per publisher required")
	}
	if !c.QoS.Valid() {
		return errors.New("invalid QoS")
	}
	if c.Delay.Mode == DelayRandom && c.Delay.Max < c.Delay.Min {
		return errors.New("delay max below min")
	}
	return nil
}

func (c *Config) logger() mqttwire.Logger {
	if c.Logger == nil {
		return mqttwire.NewNoOpLogger()
	}
	return c.Logger
}
