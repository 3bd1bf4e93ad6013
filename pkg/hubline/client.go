// ABOUTME: Client façade for the Hubline hub protocol
// ABOUTME: Orchestrates transport, codec, registry and session per call
package hubline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hubline-protocol/hubline-go/pkg/protocol"
)

// DefaultRequestTimeout bounds every call that waits on a reply.
const DefaultRequestTimeout = 1 * time.Second

// Config holds client configuration
type Config struct {
	// Transport is the connected duplex channel to the hub. Required.
	Transport Transport

	// ClientID identifies this client instance in logs. Defaults to a
	// random UUID.
	ClientID string

	// RequestTimeout bounds each call's wait for a reply.
	// Defaults to DefaultRequestTimeout.
	RequestTimeout time.Duration

	// Logger receives diagnostics for dropped and unroutable frames.
	// Defaults to a no-op logger.
	Logger zerolog.Logger
}

// Client speaks the Hubline session protocol over a single long-lived
// connection. One Client owns one session: create it after connecting,
// discard it on disconnect.
type Client struct {
	config   Config
	codec    protocol.Codec
	registry *registry
	session  *session
	log      zerolog.Logger
}

// NewClient creates a client over the given transport and registers
// its inbound handler.
func NewClient(config Config) (*Client, error) {
	if config.Transport == nil {
		return nil, fmt.Errorf("hubline: config requires a transport")
	}
	if config.ClientID == "" {
		config.ClientID = uuid.New().String()
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = DefaultRequestTimeout
	}

	c := &Client{
		config:   config,
		registry: newRegistry(),
		session:  newSession(),
		log:      config.Logger.With().Str("client_id", config.ClientID).Logger(),
	}
	config.Transport.SetInboundHandler(c.handleInbound)
	return c, nil
}

// Phase returns the session's current authentication phase.
func (c *Client) Phase() Phase {
	phase, _ := c.session.current()
	return phase
}

// Authenticate sends the access token and waits for the hub's verdict.
// Returns nil once the session is authenticated, an *AuthError when the
// hub rejects the token, and ErrRequestTimeout when no verdict arrives
// within the request deadline.
func (c *Client) Authenticate(ctx context.Context, token string) error {
	if !c.session.requestAuth() {
		// Already terminal: report the settled verdict.
		return c.authVerdict()
	}

	data, err := c.codec.SerializeAuth(token)
	if err != nil {
		return fmt.Errorf("serialize auth: %w", err)
	}
	if err := c.config.Transport.Send(ctx, data); err != nil {
		return fmt.Errorf("send auth: %w", err)
	}

	timer := time.NewTimer(c.config.RequestTimeout)
	defer timer.Stop()

	select {
	case <-c.session.done():
		return c.authVerdict()
	case <-timer.C:
		return ErrRequestTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) authVerdict() error {
	phase, reason := c.session.current()
	switch phase {
	case PhaseAuthenticated:
		return nil
	case PhaseFailed:
		return &AuthError{Reason: reason}
	default:
		return ErrRequestTimeout
	}
}

// Ping sends a liveness probe and waits for the matching pong. Ping is
// not gated on authentication.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.roundTrip(ctx, protocol.KindPing)
	return err
}

// ListAreas returns the hub's area registry.
func (c *Client) ListAreas(ctx context.Context) ([]protocol.Area, error) {
	result, err := c.gatedRoundTrip(ctx, protocol.KindListAreas)
	if err != nil {
		return nil, err
	}
	areas, ok := result.([]protocol.Area)
	if !ok {
		return nil, &ResponseError{Kind: protocol.KindListAreas, Reason: "unexpected result shape"}
	}
	return areas, nil
}

// ListDevices returns the hub's device registry.
func (c *Client) ListDevices(ctx context.Context) ([]protocol.Device, error) {
	result, err := c.gatedRoundTrip(ctx, protocol.KindListDevices)
	if err != nil {
		return nil, err
	}
	devices, ok := result.([]protocol.Device)
	if !ok {
		return nil, &ResponseError{Kind: protocol.KindListDevices, Reason: "unexpected result shape"}
	}
	return devices, nil
}

// ListEntities returns the hub's entity registry.
func (c *Client) ListEntities(ctx context.Context) ([]protocol.Entity, error) {
	result, err := c.gatedRoundTrip(ctx, protocol.KindListEntities)
	if err != nil {
		return nil, err
	}
	entities, ok := result.([]protocol.Entity)
	if !ok {
		return nil, &ResponseError{Kind: protocol.KindListEntities, Reason: "unexpected result shape"}
	}
	return entities, nil
}

// States returns the current state of every entity on the hub.
func (c *Client) States(ctx context.Context) ([]protocol.EntityState, error) {
	result, err := c.gatedRoundTrip(ctx, protocol.KindRetrieveStates)
	if err != nil {
		return nil, err
	}
	states, ok := result.([]protocol.EntityState)
	if !ok {
		return nil, &ResponseError{Kind: protocol.KindRetrieveStates, Reason: "unexpected result shape"}
	}
	return states, nil
}

// Close tears down the transport. The client is unusable afterwards.
func (c *Client) Close() error {
	return c.config.Transport.Disconnect()
}

// gatedRoundTrip refuses to send unless the session is authenticated.
func (c *Client) gatedRoundTrip(ctx context.Context, kind protocol.CommandKind) (interface{}, error) {
	if phase, _ := c.session.current(); phase != PhaseAuthenticated {
		return nil, ErrAuthRequired
	}
	return c.roundTrip(ctx, kind)
}

// roundTrip runs the correlated request pattern: allocate an id, send
// the command, wait for the registry entry to resolve, consume it. The
// entry is removed on every exit path so timed-out requests do not
// accumulate.
func (c *Client) roundTrip(ctx context.Context, kind protocol.CommandKind) (interface{}, error) {
	req := c.registry.insert(kind)
	defer c.registry.remove(req.id)

	data, err := c.codec.SerializeCommand(req.id, kind)
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", kind, err)
	}
	if err := c.config.Transport.Send(ctx, data); err != nil {
		return nil, fmt.Errorf("send %s: %w", kind, err)
	}

	timer := time.NewTimer(c.config.RequestTimeout)
	defer timer.Stop()

	select {
	case <-req.done:
		return req.outcome.result, req.outcome.err
	case <-timer.C:
		c.log.Debug().Int64("id", req.id).Stringer("kind", kind).Msg("request timed out")
		return nil, ErrRequestTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// handleInbound decodes one inbound frame and routes it by session
// phase. Invoked by the transport from a single goroutine, so frames
// are dispatched strictly in arrival order. Unroutable frames are
// dropped with a diagnostic: no caller is waiting on them.
func (c *Client) handleInbound(data []byte) {
	env, err := c.codec.DecodeEnvelope(data)
	if err != nil {
		c.log.Warn().Err(err).Msg("dropping undecodable frame")
		return
	}

	phase, _ := c.session.current()
	switch phase {
	case PhaseAuthRequested:
		c.dispatchAuth(env)
	case PhaseAuthenticated:
		c.dispatchCorrelated(env)
	default:
		// Pre-auth pings are allowed, so their pongs must route even
		// before the handshake has started.
		if env.Kind == protocol.EnvelopePong {
			c.resolvePong(env)
			return
		}
		c.log.Debug().
			Stringer("phase", phase).
			Int64("id", env.ID).
			Msg("ignoring message outside authenticated session")
	}
}

// dispatchAuth routes handshake replies to the session state machine.
func (c *Client) dispatchAuth(env protocol.Envelope) {
	switch env.Kind {
	case protocol.EnvelopeAuthOK:
		if c.session.complete() {
			c.log.Info().Msg("authenticated")
		}
	case protocol.EnvelopeAuthInvalid:
		if c.session.fail(env.Message) {
			c.log.Warn().Str("reason", env.Message).Msg("authentication rejected")
			// The hub closes the connection on invalid credentials.
			if err := c.config.Transport.Disconnect(); err != nil {
				c.log.Debug().Err(err).Msg("disconnect after auth rejection")
			}
		}
	case protocol.EnvelopeAuthRequired:
		// The hub's greeting; our credentials are already in flight.
	case protocol.EnvelopePong:
		c.resolvePong(env)
	default:
		c.log.Debug().Int64("id", env.ID).Msg("ignoring message during handshake")
	}
}

// dispatchCorrelated matches replies to pending requests by id.
func (c *Client) dispatchCorrelated(env protocol.Envelope) {
	switch env.Kind {
	case protocol.EnvelopePong:
		c.resolvePong(env)
	case protocol.EnvelopeResult:
		c.resolveResult(env)
	case protocol.EnvelopeAuthOK, protocol.EnvelopeAuthInvalid, protocol.EnvelopeAuthRequired:
		// Duplicate handshake replies are inert once authenticated.
		c.log.Debug().Msg("ignoring auth message after authentication")
	default:
		c.log.Debug().Int64("id", env.ID).Msg("dropping unrecognized message")
	}
}

func (c *Client) resolvePong(env protocol.Envelope) {
	if !c.registry.resolve(env.ID, nil, nil) {
		c.log.Debug().Int64("id", env.ID).Msg("dropping pong with no pending request")
	}
}

func (c *Client) resolveResult(env protocol.Envelope) {
	kind, ok := c.registry.kindOf(env.ID)
	if !ok {
		c.log.Debug().Int64("id", env.ID).Msg("dropping result with no pending request")
		return
	}

	if !env.Success {
		respErr := &ResponseError{Kind: kind, Reason: "command unsuccessful"}
		if env.Error != nil {
			respErr.Code = env.Error.Code
			respErr.Reason = env.Error.Message
		}
		c.registry.resolve(env.ID, nil, respErr)
		return
	}

	result, err := c.codec.DecodeResult(kind, env.Result)
	if err != nil {
		c.log.Warn().Err(err).Int64("id", env.ID).Stringer("kind", kind).Msg("result payload mismatch")
		c.registry.resolve(env.ID, nil, &ResponseError{Kind: kind, Reason: err.Error()})
		return
	}
	c.registry.resolve(env.ID, result, nil)
}
