// ABOUTME: Error taxonomy for the Hubline client
// ABOUTME: Sentinel errors plus typed auth and response failures
package hubline

import (
	"errors"
	"fmt"

	"github.com/hubline-protocol/hubline-go/pkg/protocol"
)

var (
	// ErrAuthRequired is returned when a gated command is issued before
	// the session is authenticated.
	ErrAuthRequired = errors.New("hubline: authentication required")

	// ErrRequestTimeout is returned when no matching reply arrives
	// within the request deadline.
	ErrRequestTimeout = errors.New("hubline: request timed out")
)

// AuthError reports that the hub rejected the supplied credentials.
// It is terminal for the session: the hub closes the connection.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("hubline: authentication failed: %s", e.Reason)
}

// ResponseError reports a reply that arrived but could not be used:
// either the hub flagged the command as unsuccessful, or the payload
// did not decode into the shape expected for the command kind.
type ResponseError struct {
	Kind   protocol.CommandKind
	Code   string
	Reason string
}

func (e *ResponseError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("hubline: %s failed: %s (%s)", e.Kind, e.Reason, e.Code)
	}
	return fmt.Sprintf("hubline: %s failed: %s", e.Kind, e.Reason)
}
