package bench

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/vitalvas/mqttwire"
)

const ioTimeout = 30 * time.Second

// client is a minimal MQTT connection shared by publishers and subscribers.
// It speaks the wire format directly; there is no session state.
type client struct {
	conn net.Conn
}

func dialClient(ctx context.Context, endpoint, clientID string) (*client, error) {
	conn, err := mqttwire.DialURL(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	c := &client{conn: conn}

	connect := &mqttwire.ConnectPacket{
		ClientID:   clientID,
		CleanStart: true,
		KeepAlive:  60,
	}
	if _, err := c.write(connect); err != nil {
		conn.Close()
		return nil, err
	}

	pkt, err := c.read()
	if err != nil {
		conn.Close()
		return nil, err
	}
	connack, ok := pkt.(*mqttwire.ConnackPacket)
	if !ok {
		conn.Close()
		return nil, fmt.Errorf("expected CONNACK, got %T", pkt)
	}
	if connack.ReasonCode != mqttwire.ReasonSuccess {
		conn.Close()
		return nil, fmt.Errorf("connect refused: %v", connack.ReasonCode)
	}

	return c, nil
}

func (c *client) write(pkt mqttwire.Packet) (int, error) {
	c.conn.SetWriteDeadline(time.Now().Add(ioTimeout))
	n, err := mqttwire.WritePacket(c.conn, pkt, 0)
	c.conn.SetWriteDeadline(time.Time{})
	return n, err
}

func (c *client) read() (mqttwire.Packet, error) {
	c.conn.SetReadDeadline(time.Now().Add(ioTimeout))
	pkt, _, err := mqttwire.ReadPacket(c.conn, 0)
	c.conn.SetReadDeadline(time.Time{})
	return pkt, err
}

func (c *client) subscribe(topic string, qos mqttwire.QoS) error {
	sub := &mqttwire.SubscribePacket{
		ID: 1,
		Subscriptions: []mqttwire.Subscription{
			// Retained messages from previous runs would skew trip
			// times, so ask the broker not to send them.
			{TopicFilter: topic, QoS: qos, RetainHandling: 2},
		},
	}
	if _, err := c.write(sub); err != nil {
		return err
	}

	pkt, err := c.read()
	if err != nil {
		return err
	}
	if _, ok := pkt.(*mqttwire.SubackPacket); !ok {
		return fmt.Errorf("expected SUBACK, got %T", pkt)
	}
	return nil
}

func (c *client) close() {
	disconnect := &mqttwire.DisconnectPacket{ReasonCode: mqttwire.ReasonSuccess}
	c.write(disconnect) //nolint:errcheck
	c.conn.Close()
}
