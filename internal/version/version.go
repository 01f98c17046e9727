// Package version provides build information for the emulator binary.
package version

import "github.com/retroenv/retrogolib/buildinfo"

// Set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Full returns the version string, falling back to VCS build information
// when no ldflags overrides were given.
func Full() string {
	return buildinfo.Version(Version, Commit, Date)
}
