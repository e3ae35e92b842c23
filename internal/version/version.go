// Package version carries build identification stamped in via ldflags.
package version

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String returns the full build identifier for logs and status pages.
func String() string {
	return Version + " (" + GitSHA + ", built " + BuildTime + ")"
}
