// Package version holds build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"

	"evalgo.org/fuzzreport/internal/schema"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Info describes the running binary and the schema dialect it emits.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
	Dialect   string `json:"schema_dialect" yaml:"schema_dialect"`
}

func Get() Info {
	return Info{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Dialect:   schema.DraftURL,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("fuzzreport %s (%s) built at %s on %s", i.Version, i.GitCommit, i.BuildTime, i.Platform)
}
