// Package version reports build information set through linker flags:
//
//	go build -ldflags "-X github.com/ochairo/crossbuild/internal/version.version=v1.2.0 \
//	  -X github.com/ochairo/crossbuild/internal/version.gitCommit=a1b2c3d"
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Name is the program name
const Name = "crossbuild"

const defaultUndefined = "(undefined)"

var (
	version   = "" // Release version (e.g., "v1.2.3")
	gitCommit = "" // Git commit hash (e.g., "a1b2c3d4")
)

// Version returns the normalized semantic version. A version that does not
// parse is returned trimmed but otherwise as given; an unset one is "(undefined)".
func Version() string {
	v := strings.TrimSpace(version)
	if v == "" {
		return defaultUndefined
	}

	parsed, err := semver.NewVersion(v)
	if err != nil {
		return v
	}
	return parsed.String()
}

// GitCommit returns the git commit hash, or "(undefined)"
func GitCommit() string {
	c := strings.TrimSpace(gitCommit)
	if c == "" {
		return defaultUndefined
	}
	return c
}

// IsLocal reports whether the binary was built without release linker flags
func IsLocal() bool {
	return strings.TrimSpace(version) == "" || strings.TrimSpace(gitCommit) == ""
}

// String returns "<name> <version> <commit> [<os>/<arch>]", or
// "<name> (local) [<os>/<arch>]" for local builds
func String() string {
	platform := runtime.GOOS + "/" + runtime.GOARCH
	if IsLocal() {
		return fmt.Sprintf("%s (local) [%s]", Name, platform)
	}
	return fmt.Sprintf("%s %s %s [%s]", Name, Version(), GitCommit(), platform)
}
