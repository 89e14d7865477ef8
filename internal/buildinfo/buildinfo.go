// Package buildinfo carries release metadata injected at link time.
package buildinfo

// These values are injected via ldflags for release binaries
// (-X github.com/aidanlsb/comic/internal/buildinfo.Version=...).
// They default to empty for local/dev builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

// VersionString returns Version, or "devel" for local builds.
func VersionString() string {
	if Version == "" {
		return "devel"
	}
	return Version
}
