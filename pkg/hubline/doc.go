// ABOUTME: High-level Hubline client API
// ABOUTME: Session, correlation and dispatch core for hub connections
// Package hubline provides the client-side session core for the
// Hubline hub protocol.
//
// A Client owns one session over one connection: it runs the
// authentication handshake, assigns a correlation id to every command,
// matches asynchronous replies back to the calls that issued them, and
// bounds every call with a deadline.
//
// Example:
//
//	tr, err := transport.Dial(ctx, "hub.local:8123")
//	client, err := hubline.NewClient(hubline.Config{Transport: tr})
//	err = client.Authenticate(ctx, token)
//	areas, err := client.ListAreas(ctx)
//
// For the wire types and codec, see the protocol package; for hub
// discovery on the local network, see the discovery package.
package hubline
