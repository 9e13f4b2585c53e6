// Package version holds build metadata set through -ldflags.
package version

var (
	// Version is the release version of the binary.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "none"
)
