// Package version holds build information stamped in with -ldflags:
//
//	-X github.com/hr2-io/hr2-e2e/internal/version.Version=v0.3.0
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	// PlaywrightDriver is the playwright-go release the binary was built against.
	PlaywrightDriver = "v0.5200.0"
)

type Info struct {
	Version          string
	GitCommit        string
	BuildDate        string
	GoVersion        string
	PlaywrightDriver string
}

func GetInfo() Info {
	return Info{
		Version:          Version,
		GitCommit:        GitCommit,
		BuildDate:        BuildDate,
		GoVersion:        runtime.Version(),
		PlaywrightDriver: PlaywrightDriver,
	}
}

// String returns "v0.3.0 (abc1234)".
func String() string {
	return fmt.Sprintf("%s (%s)", Version, GitCommit)
}

func Full() string {
	i := GetInfo()
	return fmt.Sprintf("%s (%s) built %s with %s, playwright-go %s",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.PlaywrightDriver)
}
