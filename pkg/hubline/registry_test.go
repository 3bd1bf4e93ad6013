// ABOUTME: Tests for the pending request registry
// ABOUTME: Covers id allocation, resolution, and concurrent correlation
package hubline

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubline-protocol/hubline-go/pkg/protocol"
)

func TestInsertAllocatesMonotonicIDs(t *testing.T) {
	r := newRegistry()

	first := r.insert(protocol.KindPing)
	second := r.insert(protocol.KindListAreas)
	third := r.insert(protocol.KindListDevices)

	assert.Equal(t, int64(1), first.id)
	assert.Equal(t, int64(2), second.id)
	assert.Equal(t, int64(3), third.id)
	assert.Equal(t, 3, r.len())
}

func TestResolveWakesWaiter(t *testing.T) {
	r := newRegistry()
	req := r.insert(protocol.KindListAreas)

	areas := []protocol.Area{{AreaID: "a1", Name: "Kitchen"}}
	require.True(t, r.resolve(req.id, areas, nil))

	select {
	case <-req.done:
	default:
		t.Fatal("done channel should be closed after resolve")
	}

	out, ok := r.peek(req.id)
	require.True(t, ok)
	require.NoError(t, out.err)
	assert.Equal(t, areas, out.result)
}

func TestResolveUnknownIDIsNoOp(t *testing.T) {
	r := newRegistry()
	req := r.insert(protocol.KindPing)

	assert.False(t, r.resolve(99, nil, nil))

	select {
	case <-req.done:
		t.Fatal("unrelated entry must not be resolved")
	default:
	}
}

func TestResolveTwiceIsNoOp(t *testing.T) {
	r := newRegistry()
	req := r.insert(protocol.KindListAreas)

	require.True(t, r.resolve(req.id, "first", nil))
	assert.False(t, r.resolve(req.id, "second", nil))

	out, ok := r.peek(req.id)
	require.True(t, ok)
	assert.Equal(t, "first", out.result)
}

func TestResolveAfterRemoveIsNoOp(t *testing.T) {
	r := newRegistry()
	req := r.insert(protocol.KindPing)
	r.remove(req.id)

	assert.False(t, r.resolve(req.id, nil, nil))
	assert.Equal(t, 0, r.len())
}

func TestKindOf(t *testing.T) {
	r := newRegistry()
	req := r.insert(protocol.KindRetrieveStates)

	kind, ok := r.kindOf(req.id)
	require.True(t, ok)
	assert.Equal(t, protocol.KindRetrieveStates, kind)

	_, ok = r.kindOf(42)
	assert.False(t, ok)
}

func TestConcurrentCallsNoCrosstalk(t *testing.T) {
	const n = 16
	r := newRegistry()

	reqs := make([]*pendingRequest, n)
	for i := range reqs {
		reqs[i] = r.insert(protocol.KindListAreas)
	}

	// Deliver replies in reverse order, each tagged with its own id.
	for i := n - 1; i >= 0; i-- {
		require.True(t, r.resolve(reqs[i].id, fmt.Sprintf("reply-%d", reqs[i].id), nil))
	}

	var wg sync.WaitGroup
	for _, req := range reqs {
		wg.Add(1)
		go func(req *pendingRequest) {
			defer wg.Done()
			<-req.done
			out, ok := r.peek(req.id)
			assert.True(t, ok)
			assert.NoError(t, out.err)
			assert.Equal(t, fmt.Sprintf("reply-%d", req.id), out.result)
		}(req)
	}
	wg.Wait()
}

func TestConcurrentInsertDistinctIDs(t *testing.T) {
	const n = 64
	r := newRegistry()

	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- r.insert(protocol.KindPing).id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d allocated twice", id)
		assert.Greater(t, id, int64(0))
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
