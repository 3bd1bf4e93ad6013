// ABOUTME: Transport port consumed by the client façade
// ABOUTME: Minimal duplex channel contract for hub connections
package hubline

import "context"

// Transport is the duplex channel the client speaks over. The client
// registers exactly one inbound handler for its lifetime; the transport
// must invoke it from a single goroutine so inbound messages are
// handled strictly in arrival order.
type Transport interface {
	// SetInboundHandler registers the callback for inbound text frames.
	// Must be called before any frame is delivered.
	SetInboundHandler(handler func(data []byte))

	// Send writes one outgoing text frame.
	Send(ctx context.Context, data []byte) error

	// Disconnect tears the connection down. Safe to call more than once.
	Disconnect() error
}
