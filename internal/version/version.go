// Package version holds build metadata, overridden at link time with
// -ldflags "-X smartinfo/internal/version.Version=...".
package version

import "runtime"

var (
	Version   = "1.0.0"
	BuildTime string
	GitCommit string
)

// GetVersion returns the release version.
func GetVersion() string {
	return Version
}

// GoVersion returns the Go runtime the binary was built with.
func GoVersion() string {
	return runtime.Version()
}
