// Package build holds build-time information.
package build

// Version is the application version.
// It defaults to "dev" and can be overwritten by linker flags.
var Version = "dev"

// Commit is the source revision, set by linker flags on release builds.
var Commit = "unknown"

// String formats the version for display.
func String() string {
	return Version + " (" + Commit + ")"
}
