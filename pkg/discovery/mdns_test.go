// ABOUTME: Tests for mDNS hub discovery
// ABOUTME: Validates browser lifecycle and service entry conversion
package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/hashicorp/mdns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBrowserDefaults(t *testing.T) {
	b := NewBrowser(Config{})
	defer b.Stop()

	require.NotNil(t, b)
	assert.Equal(t, 3*time.Second, b.config.QueryTimeout)
	assert.NotNil(t, b.Hubs())
}

func TestBrowserStop(t *testing.T) {
	b := NewBrowser(Config{})
	b.Stop()

	select {
	case <-b.ctx.Done():
	case <-time.After(100 * time.Millisecond):
		t.Error("context should be cancelled after Stop()")
	}
}

func TestEntryToHub(t *testing.T) {
	entry := &mdns.ServiceEntry{
		Name:   "kitchen-hub",
		AddrV4: net.ParseIP("192.168.1.50"),
		Port:   8123,
	}

	hub := entryToHub(entry)
	require.NotNil(t, hub)
	assert.Equal(t, "kitchen-hub", hub.Name)
	assert.Equal(t, "192.168.1.50", hub.Host)
	assert.Equal(t, 8123, hub.Port)
}

func TestEntryToHubNoAddress(t *testing.T) {
	assert.Nil(t, entryToHub(nil))
	assert.Nil(t, entryToHub(&mdns.ServiceEntry{Name: "no-addr", Port: 8123}))
}
