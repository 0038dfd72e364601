// Package version exposes build information injected at link time, for example:
//
//	go build -ldflags "-X github.com/oshokin/freesound-grabber/internal/version.Version=1.2.0"
package version

//nolint:gochecknoglobals // Overridden through -ldflags at build time.
var (
	// Version is the semantic version of the build.
	Version = "0.1.0"
	// Commit is the VCS revision the binary was built from.
	Commit = "none"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return Version
}

// Full returns the version together with the commit and build time.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}
