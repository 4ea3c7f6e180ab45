// Package version provides build-time version information.
package version

import "fmt"

// These variables are set at build time using -ldflags
var (
	// Version is the semantic version
	Version = "0.1.0"

	// BuildTime is the UTC time when the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// String formats the version for display, e.g. "cubescan 0.1.0 (abc123, 2024-05-01T10:00:00Z)".
func String(name string) string {
	return fmt.Sprintf("%s %s (%s, %s)", name, Version, GitCommit, BuildTime)
}
