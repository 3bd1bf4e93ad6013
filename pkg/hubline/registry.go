// ABOUTME: Pending request registry keyed by correlation id
// ABOUTME: Matches asynchronous replies to the calls that issued them
package hubline

import (
	"sync"

	"github.com/hubline-protocol/hubline-go/pkg/protocol"
)

// outcome is the terminal value of a pending request: either a typed
// result or the error the caller should observe.
type outcome struct {
	result interface{}
	err    error
}

// pendingRequest tracks one in-flight command. Its done channel is
// closed exactly once, when the outcome is recorded.
type pendingRequest struct {
	id      int64
	kind    protocol.CommandKind
	done    chan struct{}
	outcome *outcome
}

// registry is the synchronization point between the issuing side and
// the single inbound-delivery goroutine. Correlation ids are allocated
// monotonically starting at 1 and never reused within a session.
type registry struct {
	mu      sync.Mutex
	nextID  int64
	entries map[int64]*pendingRequest
}

func newRegistry() *registry {
	return &registry{entries: make(map[int64]*pendingRequest)}
}

// insert allocates the next correlation id and records a fresh
// unresolved entry for it.
func (r *registry) insert(kind protocol.CommandKind) *pendingRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	req := &pendingRequest{
		id:   r.nextID,
		kind: kind,
		done: make(chan struct{}),
	}
	r.entries[req.id] = req
	return req
}

// resolve records the outcome for id and wakes the waiting caller.
// Unknown ids and already-resolved entries are ignored: a late or
// duplicate reply has no caller left to inform.
func (r *registry) resolve(id int64, result interface{}, err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.entries[id]
	if !ok || req.outcome != nil {
		return false
	}
	req.outcome = &outcome{result: result, err: err}
	close(req.done)
	return true
}

// peek returns the recorded outcome for id, if any.
func (r *registry) peek(id int64) (*outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.entries[id]
	if !ok || req.outcome == nil {
		return nil, false
	}
	return req.outcome, true
}

// kindOf reports the command kind the entry for id was issued with,
// so the dispatcher knows how to decode the reply payload.
func (r *registry) kindOf(id int64) (protocol.CommandKind, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.entries[id]
	if !ok {
		return protocol.KindUnknown, false
	}
	return req.kind, true
}

// remove deletes the entry for id. Called by the issuing side once the
// outcome is consumed, or when it gives up waiting.
func (r *registry) remove(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// len reports the number of outstanding entries.
func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
