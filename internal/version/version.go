// ABOUTME: Build identity constants
// ABOUTME: Product, manufacturer and version strings reported by clients
package version

const (
	// Product is the product name reported to hubs and in logs.
	Product = "Hubline Go Client"

	// Manufacturer identifies the project.
	Manufacturer = "Hubline"

	// Version is the library version. Overridden at release time.
	Version = "0.1.0"
)
