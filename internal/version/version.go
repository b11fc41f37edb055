// Package version reports build metadata. The linker sets the variables:
//
//	go build -ldflags "-X github.com/banshee-data/velocity.hud/internal/version.Version=v1.2.0"
package version

import "fmt"

var (
	// Version is the release tag
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String is the one-line banner printed by -version.
func String() string {
	sha := GitSHA
	if len(sha) > 7 {
		sha = sha[:7]
	}
	return fmt.Sprintf("velocity.hud %s (%s, built %s)", Version, sha, BuildTime)
}
