// Package build provides build information that is linked into the application. Other
// packages within this project can use this information in logs etc..
package build

var (
	// Version is the build version of the binary, set with
	// -ldflags "-X github.com/katalvlaran/phasepack/internal/build.Version=...".
	Version = "dev"

	// Commit is the git commit hash the binary was built from.
	Commit = "none"

	// Date is the build date in RFC3339.
	Date = "unknown"
)
