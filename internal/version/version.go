// ABOUTME: Version and product identification
// ABOUTME: Shared by the CLI, the TUI header and startup logs
package version

import "fmt"

// Version is overridden at build time with -ldflags "-X .../internal/version.Version=x.y.z"
var Version = "0.1.0"

// Product is the name shown in the TUI header and logs
const Product = "Melody Observer"

// String returns the product name with its version
func String() string {
	return fmt.Sprintf("%s %s", Product, Version)
}
