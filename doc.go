// Package mqttwire implements the MQTT v5.0 wire format.
//
// This package implements the binary codec defined by the MQTT Version 5.0
// OASIS Standard: https://docs.oasis-open.org/mqtt/mqtt/v5.0/mqtt-v5.0.html
//
// # Features
//
//   - All 15 MQTT v5.0 control packet types
//   - Complete properties system with per-packet validity checking
//   - Strict malformed-input rejection: non-minimal variable byte
//     integers, unknown or duplicate properties, invalid UTF-8, and
//     trailing bytes are all decode errors
//   - Zero-copy decoding: byte slice fields alias the input buffer
//   - Transport dialers: TCP, TLS, QUIC, WebSocket, Unix sockets, and
//     HTTP CONNECT / SOCKS5 proxies
//
// # Packet Types
//
// The package provides structs for all MQTT v5.0 control packets:
//
//   - ConnectPacket, ConnackPacket: Connection establishment
//   - PublishPacket, PubackPacket, PubrecPacket, PubrelPacket, PubcompPacket: Message delivery
//   - SubscribePacket, SubackPacket: Topic subscription
//   - UnsubscribePacket, UnsubackPacket: Topic unsubscription
//   - PingreqPacket, PingrespPacket: Keep-alive
//   - DisconnectPacket: Connection termination
//   - AuthPacket: Enhanced authentication
//
// # Decoding
//
// DecodePacket parses one packet from a byte slice and reports how many
// bytes it consumed:
//
//	pkt, n, err := mqttwire.DecodePacket(buf)
//
// Decoded byte slice fields (payloads, binary properties) alias the input
// buffer. Callers that retain a packet past the buffer's lifetime must
// copy those fields.
//
// # Encoding
//
// EncodePacket serializes a packet into a freshly allocated buffer;
// AppendPacket appends to an existing one:
//
//	buf, err := mqttwire.EncodePacket(pkt)
//	buf, err = mqttwire.AppendPacket(buf, nextPkt)
//
// Encoding validates the packet first, so a packet that passes Validate
// always serializes.
//
// # Streams
//
// Use ReadPacket and WritePacket to read/write packets from/to connections:
//
//	pkt, n, err := mqttwire.ReadPacket(conn, maxPacketSize)
//	n, err := mqttwire.WritePacket(conn, packet, maxPacketSize)
package mqttwire
