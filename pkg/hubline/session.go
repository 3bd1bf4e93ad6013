// ABOUTME: Session authentication state machine
// ABOUTME: Gates commands on auth phase and resolves the handshake
package hubline

import "sync"

// Phase is the session's authentication state.
type Phase int

const (
	// PhaseInitial is the state before Authenticate has been called.
	PhaseInitial Phase = iota
	// PhaseAuthRequested means credentials are in flight.
	PhaseAuthRequested
	// PhaseAuthenticated means the hub accepted the credentials.
	PhaseAuthenticated
	// PhaseFailed means the hub rejected the credentials. Terminal.
	PhaseFailed
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseAuthRequested:
		return "auth_requested"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// session tracks the authentication phase. Transitions are performed
// only by the Authenticate entry point and the inbound dispatch path;
// the phase never leaves PhaseAuthenticated once reached.
type session struct {
	mu       sync.Mutex
	phase    Phase
	reason   string
	terminal chan struct{} // closed once on Authenticated or Failed
}

func newSession() *session {
	return &session{terminal: make(chan struct{})}
}

// current returns the phase and, for PhaseFailed, the rejection reason.
func (s *session) current() (Phase, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase, s.reason
}

// requestAuth moves Initial to AuthRequested. Re-requesting while
// already requested is allowed (a retry after timeout); terminal
// phases are left untouched.
func (s *session) requestAuth() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseAuthenticated || s.phase == PhaseFailed {
		return false
	}
	s.phase = PhaseAuthRequested
	return true
}

// complete moves AuthRequested to Authenticated. Any other starting
// phase leaves the machine unchanged, so duplicate or out-of-order
// auth replies are inert.
func (s *session) complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseAuthRequested {
		return false
	}
	s.phase = PhaseAuthenticated
	close(s.terminal)
	return true
}

// fail moves AuthRequested to Failed, recording the hub's reason.
// Inert from any other phase; in particular an auth_invalid arriving
// after authentication never reverts the session.
func (s *session) fail(reason string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseAuthRequested {
		return false
	}
	s.phase = PhaseFailed
	s.reason = reason
	close(s.terminal)
	return true
}

// done returns a channel closed when the session reaches a terminal
// phase (Authenticated or Failed).
func (s *session) done() <-chan struct{} {
	return s.terminal
}
