package bench

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/vitalvas/mqttwire"
)

// subscriber receives an expected number of messages from one topic. Each
// payload carries the microsecond offset at which the publisher sent it,
// measured against the shared time reference, so the subscriber can
// compute a per-message trip time without synchronized clocks.
type subscriber struct {
	client   *client
	qos      mqttwire.QoS
	expected int
	timeRef  time.Time

	deltas    []time.Duration
	tripTimes []time.Duration
}

func newSubscriber(ctx context.Context, cfg *Config, id int, timeRef time.Time) (*subscriber, error) {
	c, err := dialClient(ctx, cfg.Endpoint, fmt.Sprintf("bench-sub-%d", id))
	if err != nil {
		return nil, err
	}

	if err := c.subscribe(cfg.Topic, cfg.QoS); err != nil {
		c.close()
		return nil, err
	}

	return &subscriber{
		client:   c,
		qos:      cfg.QoS,
		expected: cfg.Messages * cfg.Publishers,
		timeRef:  timeRef,
		deltas:   make([]time.Duration, 0, cfg.Messages*cfg.Publishers),
	}, nil
}

func (s *subscriber) run(ctx context.Context) (SubscriberStats, error) {
	defer s.client.close()

	start := time.Now()
	for len(s.tripTimes) < s.expected {
		if err := ctx.Err(); err != nil {
			return SubscriberStats{}, err
		}
		if err := s.recvOne(); err != nil {
			return SubscriberStats{}, err
		}
	}

	return SubscriberStats{
		TotalTime: time.Since(start),
		Deltas:    s.deltas,
		TripTimes: s.tripTimes,
	}, nil
}

func (s *subscriber) recvOne() error {
	start := time.Now()

	pkt, err := s.client.read()
	if err != nil {
		return err
	}
	pub, ok := pkt.(*mqttwire.PublishPacket)
	if !ok {
		// Brokers may interleave QoS control traffic; skip anything
		// that is not a delivery.
		return nil
	}
	now := time.Now()

	if err := s.acknowledge(pub); err != nil {
		return err
	}

	if len(pub.Payload) != 8 {
		return fmt.Errorf("unexpected payload length %d", len(pub.Payload))
	}
	sent := time.Duration(binary.BigEndian.Uint64(pub.Payload)) * time.Microsecond

	trip := now.Sub(s.timeRef) - sent
	if trip < 0 {
		trip = 0
	}
	s.tripTimes = append(s.tripTimes, trip)
	s.deltas = append(s.deltas, now.Sub(start))
	return nil
}

func (s *subscriber) acknowledge(pub *mqttwire.PublishPacket) error {
	switch pub.QoS {
	case mqttwire.QoSAtLeastOnce:
		ack := &mqttwire.PubackPacket{ID: pub.ID, ReasonCode: mqttwire.ReasonSuccess}
		_, err := s.client.write(ack)
		return err
	case mqttwire.QoSExactlyOnce:
		rec := &mqttwire.PubrecPacket{ID: pub.ID, ReasonCode: mqttwire.ReasonSuccess}
		if _, err := s.client.write(rec); err != nil {
			return err
		}
		pkt, err := s.client.read()
		if err != nil {
			return err
		}
		rel, ok := pkt.(*mqttwire.PubrelPacket)
		if !ok {
			return fmt.Errorf("expected PUBREL, got %T", pkt)
		}
		comp := &mqttwire.PubcompPacket{ID: rel.ID, ReasonCode: mqttwire.ReasonSuccess}
		_, err = s.client.write(comp)
		return err
	}
	return nil
}
