// Package version holds build information for gatos binaries.
package version

import "fmt"

// Set at build time with -ldflags "-X gatos/internal/version.Version=...".
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns a one-line description such as "v0.1.0 (abc123, built 2024-01-02)".
func String() string {
	return fmt.Sprintf("v%s (%s, built %s)", Version, GitCommit, BuildTime)
}
