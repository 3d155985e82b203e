package mqttwire

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"time"
)

// Dialer establishes broker connections for codec consumers such as the
// load generator. The codec itself performs no I/O; dialers only hand back
// a byte stream that ReadPacket and WritePacket operate on.
type Dialer interface {
	// Dial connects to the address with the given context.
	Dial(ctx context.Context, address string) (net.Conn, error)
}

// TCPDialer connects to MQTT brokers over plain TCP.
type TCPDialer struct {
	// Timeout is the maximum time to wait for a connection.
	// Zero means no timeout.
	Timeout time.Duration
}

// Dial connects to the address.
func (d *TCPDialer) Dial(ctx context.Context, address string) (net.Conn, error) {
	dialer := net.Dialer{Timeout: d.Timeout}
	return dialer.DialContext(ctx, "tcp", address)
}

// TLSDialer connects to MQTT brokers over TLS.
type TLSDialer struct {
	// Config is the TLS configuration.
	Config *tls.Config

	// Timeout is the maximum time to wait for a connection.
	// Zero means no timeout.
	Timeout time.Duration
}

// Dial connects to the address.
func (d *TLSDialer) Dial(ctx context.Context, address string) (net.Conn, error) {
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{
			Timeout: d.Timeout,
		},
		Config: d.Config,
	}
	return dialer.DialContext(ctx, "tcp", address)
}

// DialURL connects to an endpoint URL of the form scheme://host:port.
// Supported schemes: tcp, tls, quic, ws, wss, unix. An address without a
// scheme is dialed as plain TCP.
func DialURL(ctx context.Context, endpoint string, tlsConfig *tls.Config) (net.Conn, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		// Bare host:port
		return (&TCPDialer{}).Dial(ctx, endpoint)
	}

	switch u.Scheme {
	case "tcp", "":
		return (&TCPDialer{}).Dial(ctx, u.Host)
	case "tls", "ssl":
		return (&TLSDialer{Config: tlsConfig}).Dial(ctx, u.Host)
	case "quic":
		return NewQUICDialer(tlsConfig).Dial(ctx, u.Host)
	case "ws", "wss":
		dialer := NewWSDialer()
		dialer.Dialer.TLSClientConfig = tlsConfig
		return dialer.Dial(ctx, endpoint)
	case "unix":
		return NewUnixDialer().Dial(ctx, u.Path)
	default:
		return nil, fmt.Errorf("unsupported endpoint scheme: %s", u.Scheme)
	}
}
