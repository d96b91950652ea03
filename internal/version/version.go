// Package version carries the build identity the CLI prints for --version.
package version

import "fmt"

// Stamped at link time via -ldflags; "unknown" for plain go-build binaries.
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String renders the single version line the root command surfaces.
func String() string {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("obras dev (commit: %s, built: %s)", commit, BuildTime)
}
