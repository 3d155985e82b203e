package bench

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/vitalvas/mqttwire"
	"golang.org/x/time/rate"
)

// publisher sends a fixed number of timestamped messages to one topic.
//
// A publisher that finishes early must not drop its connection: brokers
// may still be flushing its messages to slow subscribers, and a closed
// connection can lose queued data. Publishers therefore hold the
// connection open until the release channel closes.
type publisher struct {
	client  *client
	topic   string
	qos     mqttwire.QoS
	msgs    int
	delay   Delay
	timeRef time.Time
	release <-chan struct{}

	nextID uint16
	deltas []time.Duration
}

func newPublisher(ctx context.Context, cfg *Config, id int, timeRef time.Time, release <-chan struct{}) (*publisher, error) {
	c, err := dialClient(ctx, cfg.Endpoint, fmt.Sprintf("bench-pub-%d", id))
	if err != nil {
		return nil, err
	}
	return &publisher{
		client:  c,
		topic:   cfg.Topic,
		qos:     cfg.QoS,
		msgs:    cfg.Messages,
		delay:   cfg.Delay,
		timeRef: timeRef,
		release: release,
		deltas:  make([]time.Duration, 0, cfg.Messages),
	}, nil
}

func (p *publisher) run(ctx context.Context) (PublisherStats, error) {
	defer p.client.close()

	start := time.Now()
	var err error
	switch p.delay.Mode {
	case DelayConstant:
		err = p.runPaced(ctx)
	case DelayRandom:
		err = p.runJittered(ctx)
	default:
		err = p.runUnpaced(ctx)
	}
	total := time.Since(start)
	if err != nil {
		return PublisherStats{}, err
	}

	select {
	case <-p.release:
	case <-ctx.Done():
		return PublisherStats{}, ctx.Err()
	}

	return PublisherStats{TotalTime: total, Deltas: p.deltas}, nil
}

func (p *publisher) runUnpaced(ctx context.Context) error {
	for i := 0; i < p.msgs; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.sendOne(); err != nil {
			return err
		}
	}
	return nil
}

func (p *publisher) runPaced(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Every(p.delay.Constant), 1)
	for i := 0; i < p.msgs; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		if err := p.sendOne(); err != nil {
			return err
		}
	}
	return nil
}

func (p *publisher) runJittered(ctx context.Context) error {
	span := p.delay.Max - p.delay.Min
	timer := time.NewTimer(0)
	defer timer.Stop()
	for i := 0; i < p.msgs; i++ {
		if err := p.sendOne(); err != nil {
			return err
		}
		sleep := p.delay.Min
		if span > 0 {
			sleep += rand.N(span)
		}
		timer.Reset(sleep)
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// sendOne publishes a single message whose payload is the big-endian
// microsecond offset from the shared time reference. For QoS 1 and 2 it
// drives the acknowledgement flow to completion before returning.
func (p *publisher) sendOne() error {
	start := time.Now()

	var payload [8]byte
	binary.BigEndian.PutUint64(payload[:], uint64(start.Sub(p.timeRef).Microseconds()))

	pub := &mqttwire.PublishPacket{
		Topic:   p.topic,
		Payload: payload[:],
		QoS:     p.qos,
	}
	if p.qos > mqttwire.QoSAtMostOnce {
		p.nextID++
		if p.nextID == 0 {
			p.nextID = 1
		}
		pub.ID = p.nextID
	}

	if _, err := p.client.write(pub); err != nil {
		return err
	}

	switch p.qos {
	case mqttwire.QoSAtLeastOnce:
		if err := p.awaitAck(pub.ID); err != nil {
			return err
		}
	case mqttwire.QoSExactlyOnce:
		if err := p.awaitRelease(pub.ID); err != nil {
			return err
		}
	}

	p.deltas = append(p.deltas, time.Since(start))
	return nil
}

func (p *publisher) awaitAck(id uint16) error {
	pkt, err := p.client.read()
	if err != nil {
		return err
	}
	ack, ok := pkt.(*mqttwire.PubackPacket)
	if !ok {
		return fmt.Errorf("expected PUBACK, got %T", pkt)
	}
	if ack.ID != id {
		return fmt.Errorf("PUBACK for packet %d, want %d", ack.ID, id)
	}
	return nil
}

func (p *publisher) awaitRelease(id uint16) error {
	pkt, err := p.client.read()
	if err != nil {
		return err
	}
	rec, ok := pkt.(*mqttwire.PubrecPacket)
	if !ok {
		return fmt.Errorf("expected PUBREC, got %T", pkt)
	}
	if rec.ID != id {
		return fmt.Errorf("PUBREC for packet %d, want %d", rec.ID, id)
	}

	rel := &mqttwire.PubrelPacket{ID: id, ReasonCode: mqttwire.ReasonSuccess}
	if _, err := p.client.write(rel); err != nil {
		return err
	}

	pkt, err = p.client.read()
	if err != nil {
		return err
	}
	comp, ok := pkt.(*mqttwire.PubcompPacket)
	if !ok {
		return fmt.Errorf("expected PUBCOMP, got %T", pkt)
	}
	if comp.ID != id {
		return fmt.Errorf("PUBCOMP for packet %d, want %d", comp.ID, id)
	}
	return nil
}
