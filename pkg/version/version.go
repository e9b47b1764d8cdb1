// Package version reports build information of the hrskills binary.
package version

import (
	"encoding/json"
	"fmt"
	"runtime"
)

var (
	// Version is set at build time with -ldflags
	Version = "dev"
	// GitCommit is the commit the binary was built from
	GitCommit = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// Info represents version information
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`
	BuildTime string `json:"buildTime" yaml:"buildTime"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
}

// Get returns the version information of the running binary
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("hrskills %s (commit %s, built %s, %s)", i.Version, i.GitCommit, i.BuildTime, i.GoVersion)
}

// JSON returns the indented JSON representation of version info
func (i Info) JSON() (string, error) {
	b, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
