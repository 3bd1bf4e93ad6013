// ABOUTME: mDNS hub discovery package
// ABOUTME: Find Hubline hubs on the local network
// Package discovery provides mDNS discovery for Hubline hubs.
//
// Example:
//
//	hubs, err := discovery.Discover(5 * time.Second)
//	for _, hub := range hubs {
//	    fmt.Printf("Found: %s at %s:%d\n", hub.Name, hub.Host, hub.Port)
//	}
package discovery
