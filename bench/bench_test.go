package bench

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/mqttwire"
)

func TestParseDelayRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		d, err := ParseDelayRange("1ms:10ms")
		require.NoError(t, err)
		assert.Equal(t, DelayRandom, d.Mode)
		assert.Equal(t, time.Millisecond, d.Min)
		assert.Equal(t, 10*time.Millisecond, d.Max)
	})

	t.Run("equal bounds", func(t *testing.T) {
		d, err := ParseDelayRange("5ms:5ms")
		require.NoError(t, err)
		assert.Equal(t, d.Min, d.Max)
	})

	t.Run("max below min", func(t *testing.T) {
		_, err := ParseDelayRange("10ms:1ms")
		assert.Error(t, err)
	})

	t.Run("missing separator", func(t *testing.T) {
		_, err := ParseDelayRange("10ms")
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := ParseDelayRange("1ms:fast")
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty endpoint", func(c *Config) { c.Endpoint = "" }},
		{"empty topic", func(c *Config) { c.Topic = "" }},
		{"zero publishers", func(c *Config) { c.Publishers = 0 }},
		{"zero subscribers", func(c *Config) { c.Subscribers = 0 }},
		{"zero messages", func(c *Config) { c.Messages = 0 }},
		{"invalid qos", func(c *Config) { c.QoS = 3 }},
		{"reversed delay range", func(c *Config) {
			c.Delay = Delay{Mode: DelayRandom, Min: time.Second, Max: time.Millisecond}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestReportStatistics(t *testing.T) {
	report := &Report{
		TripTimes: []time.Duration{
			1 * time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond,
			4 * time.Millisecond, 5 * time.Millisecond, 6 * time.Millisecond,
			7 * time.Millisecond, 8 * time.Millisecond, 9 * time.Millisecond,
			10 * time.Millisecond,
		},
	}

	assert.Equal(t, 1*time.Millisecond, report.Min())
	assert.Equal(t, 10*time.Millisecond, report.Max())
	assert.Equal(t, 5500*time.Microsecond, report.Mean())
	assert.Equal(t, 6*time.Millisecond, report.Percentile(50))
	assert.Equal(t, 10*time.Millisecond, report.Percentile(99))
	assert.Equal(t, 10*time.Millisecond, report.Percentile(100))
}

func TestReportEmpty(t *testing.T) {
	report := &Report{}
	assert.Equal(t, time.Duration(0), report.Min())
	assert.Equal(t, time.Duration(0), report.Max())
	assert.Equal(t, time.Duration(0), report.Mean())
	assert.Equal(t, time.Duration(0), report.Percentile(99))
}

// fakeBroker is a minimal in-process broker speaking just enough MQTT to
// serve a benchmark run: it acknowledges connects and subscribes, fans
// every publish out to all subscribed connections, and drives both sides
// of the QoS 1 and QoS 2 acknowledgement flows.
type fakeBroker struct {
	listener net.Listener

	mu   sync.Mutex
	subs []*brokerConn
	wg   sync.WaitGroup
}

type brokerConn struct {
	conn net.Conn
	mu   sync.Mutex
}

func (c *brokerConn) write(pkt mqttwire.Packet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := mqttwire.WritePacket(c.conn, pkt, 0)
	return err
}

func newFakeBroker(t *testing.T) *fakeBroker {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	b := &fakeBroker{listener: listener}
	b.wg.Add(1)
	go b.acceptLoop()

	t.Cleanup(func() {
		listener.Close()
		b.wg.Wait()
	})
	return b
}

func (b *fakeBroker) addr() string {
	return b.listener.Addr().String()
}

func (b *fakeBroker) acceptLoop() {
	defer b.wg.Done()
	for {
		conn, err := b.listener.Accept()
		if err != nil {
			return
		}
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			b.handleConn(conn)
		}()
	}
}

func (b *fakeBroker) handleConn(conn net.Conn) {
	defer conn.Close()
	bc := &brokerConn{conn: conn}

	pkt, _, err := mqttwire.ReadPacket(conn, 0)
	if err != nil {
		return
	}
	if _, ok := pkt.(*mqttwire.ConnectPacket); !ok {
		return
	}
	if err := bc.write(&mqttwire.ConnackPacket{ReasonCode: mqttwire.ReasonSuccess}); err != nil {
		return
	}

	for {
		pkt, _, err := mqttwire.ReadPacket(conn, 0)
		if err != nil {
			return
		}

		switch p := pkt.(type) {
		case *mqttwire.SubscribePacket:
			codes := make([]mqttwire.ReasonCode, len(p.Subscriptions))
			for i, sub := range p.Subscriptions {
				codes[i] = mqttwire.ReasonCode(sub.QoS)
			}
			b.mu.Lock()
			b.subs = append(b.subs, bc)
			b.mu.Unlock()
			if err := bc.write(&mqttwire.SubackPacket{ID: p.ID, ReasonCodes: codes}); err != nil {
				return
			}

		case *mqttwire.PublishPacket:
			switch p.QoS {
			case mqttwire.QoSAtLeastOnce:
				if err := bc.write(&mqttwire.PubackPacket{ID: p.ID, ReasonCode: mqttwire.ReasonSuccess}); err != nil {
					return
				}
			case mqttwire.QoSExactlyOnce:
				if err := bc.write(&mqttwire.PubrecPacket{ID: p.ID, ReasonCode: mqttwire.ReasonSuccess}); err != nil {
					return
				}
			}
			b.fanOut(p)

		case *mqttwire.PubrelPacket:
			if err := bc.write(&mqttwire.PubcompPacket{ID: p.ID, ReasonCode: mqttwire.ReasonSuccess}); err != nil {
				return
			}

		case *mqttwire.PubrecPacket:
			if err := bc.write(&mqttwire.PubrelPacket{ID: p.ID, ReasonCode: mqttwire.ReasonSuccess}); err != nil {
				return
			}

		case *mqttwire.PubackPacket, *mqttwire.PubcompPacket:
			// Acknowledgement flows end here.

		case *mqttwire.PingreqPacket:
			if err := bc.write(&mqttwire.PingrespPacket{}); err != nil {
				return
			}

		case *mqttwire.DisconnectPacket:
			return
		}
	}
}

func (b *fakeBroker) fanOut(p *mqttwire.PublishPacket) {
	b.mu.Lock()
	subs := make([]*brokerConn, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, sub := range subs {
		out := &mqttwire.PublishPacket{
			Topic:   p.Topic,
			Payload: p.Payload,
			QoS:     p.QoS,
			ID:      p.ID,
		}
		_ = sub.write(out)
	}
}

func TestRunQoS0(t *testing.T) {
	broker := newFakeBroker(t)

	cfg := DefaultConfig()
	cfg.Endpoint = broker.addr()
	cfg.Publishers = 2
	cfg.Subscribers = 2
	cfg.Messages = 5
	cfg.Delay = Delay{Mode: DelayNone}

	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	// Every subscriber sees every message from every publisher.
	assert.Len(t, report.TripTimes, 2*2*5)
	assert.Len(t, report.Publishers, 2)
	assert.Len(t, report.Subscribers, 2)
	assert.Greater(t, report.DepartureRate, 0.0)
	assert.Greater(t, report.ArrivalRate, 0.0)
	assert.GreaterOrEqual(t, report.Max(), report.Min())
}

func TestRunQoS1(t *testing.T) {
	broker := newFakeBroker(t)

	cfg := DefaultConfig()
	cfg.Endpoint = broker.addr()
	cfg.Publishers = 2
	cfg.Subscribers = 1
	cfg.Messages = 3
	cfg.QoS = mqttwire.QoSAtLeastOnce
	cfg.Delay = Delay{Mode: DelayNone}

	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, report.TripTimes, 2*3)
}

func TestRunQoS2(t *testing.T) {
	broker := newFakeBroker(t)

	cfg := DefaultConfig()
	cfg.Endpoint = broker.addr()
	cfg.Publishers = 1
	cfg.Subscribers = 1
	cfg.Messages = 3
	cfg.QoS = mqttwire.QoSExactlyOnce
	cfg.Delay = Delay{Mode: DelayNone}

	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, report.TripTimes, 3)
}

func TestRunPacedDelay(t *testing.T) {
	broker := newFakeBroker(t)

	cfg := DefaultConfig()
	cfg.Endpoint = broker.addr()
	cfg.Publishers = 1
	cfg.Subscribers = 1
	cfg.Messages = 3
	cfg.Delay = Delay{Mode: DelayConstant, Constant: time.Millisecond}

	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, report.TripTimes, 3)
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Publishers = 0

	_, err := Run(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRunUnreachableBroker(t *testing.T) {
	// Grab a port and close it again so nothing is listening.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	cfg := DefaultConfig()
	cfg.Endpoint = addr
	cfg.Publishers = 1
	cfg.Subscribers = 1
	cfg.Messages = 1

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = Run(ctx, cfg)
	assert.Error(t, err)
}
