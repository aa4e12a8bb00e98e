package version

import "fmt"

// Stamped by the linker at release time; "unknown" on plain go-build binaries.
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String reports the build identity. Releases are cut from commits rather
// than tags, so there is no semver component.
func String() string {
	return fmt.Sprintf("gachabot dev (commit: %s, built: %s)", shortCommit(), BuildTime)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
