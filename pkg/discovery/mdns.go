// ABOUTME: mDNS discovery of Hubline hubs on the local network
// ABOUTME: Browses for the hub service type and reports endpoints
package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/mdns"
	"github.com/rs/zerolog"
)

// ServiceType is the mDNS service advertised by Hubline hubs.
const ServiceType = "_hubline._tcp"

// HubInfo describes a discovered hub endpoint.
type HubInfo struct {
	Name string
	Host string
	Port int
}

// Config holds discovery configuration
type Config struct {
	// QueryTimeout bounds a single mDNS query round. Defaults to 3s.
	QueryTimeout time.Duration

	// Logger receives browse diagnostics. Defaults to a no-op logger.
	Logger zerolog.Logger
}

// Browser continuously browses the local network for hubs and delivers
// each discovery on a channel.
type Browser struct {
	config Config
	ctx    context.Context
	cancel context.CancelFunc
	hubs   chan *HubInfo
}

// NewBrowser creates a hub browser.
func NewBrowser(config Config) *Browser {
	if config.QueryTimeout <= 0 {
		config.QueryTimeout = 3 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Browser{
		config: config,
		ctx:    ctx,
		cancel: cancel,
		hubs:   make(chan *HubInfo, 10),
	}
}

// Browse starts the background browse loop.
func (b *Browser) Browse() {
	go b.browseLoop()
}

// Hubs returns the channel of discovered hubs.
func (b *Browser) Hubs() <-chan *HubInfo {
	return b.hubs
}

// Stop stops browsing.
func (b *Browser) Stop() {
	b.cancel()
}

func (b *Browser) browseLoop() {
	for {
		select {
		case <-b.ctx.Done():
			return
		default:
		}

		entries := make(chan *mdns.ServiceEntry, 10)

		go func() {
			for entry := range entries {
				hub := entryToHub(entry)
				if hub == nil {
					continue
				}
				b.config.Logger.Debug().
					Str("name", hub.Name).
					Str("host", hub.Host).
					Int("port", hub.Port).
					Msg("discovered hub")

				select {
				case b.hubs <- hub:
				case <-b.ctx.Done():
					return
				}
			}
		}()

		params := &mdns.QueryParam{
			Service: ServiceType,
			Domain:  "local",
			Timeout: b.config.QueryTimeout,
			Entries: entries,
		}

		if err := mdns.Query(params); err != nil {
			b.config.Logger.Warn().Err(err).Msg("mdns query failed")
		}
		close(entries)
	}
}

// Discover runs a single bounded query and returns every hub found.
func Discover(timeout time.Duration) ([]HubInfo, error) {
	entries := make(chan *mdns.ServiceEntry, 10)
	var hubs []HubInfo

	done := make(chan struct{})
	go func() {
		defer close(done)
		for entry := range entries {
			if hub := entryToHub(entry); hub != nil {
				hubs = append(hubs, *hub)
			}
		}
	}()

	params := &mdns.QueryParam{
		Service: ServiceType,
		Domain:  "local",
		Timeout: timeout,
		Entries: entries,
	}
	err := mdns.Query(params)
	close(entries)
	<-done

	if err != nil {
		return nil, fmt.Errorf("mdns query: %w", err)
	}
	return hubs, nil
}

func entryToHub(entry *mdns.ServiceEntry) *HubInfo {
	if entry == nil || entry.AddrV4 == nil {
		return nil
	}
	return &HubInfo{
		Name: entry.Name,
		Host: entry.AddrV4.String(),
		Port: entry.Port,
	}
}
