package version

import (
	"encoding/json"
	"fmt"
	"runtime"
)

var (
	// Version is the current version of the SDK
	// This will be set during the build process via -ldflags
	Version = "dev"

	// GitCommit is the git commit SHA that was built
	// This will be set during the build process
	GitCommit = "unknown"
)

// Info represents version information
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	GoVersion string `json:"goVersion"`
}

// Get returns the version information
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
	}
}

// String returns the string representation of version info
func (i Info) String() string {
	return fmt.Sprintf("Version: %s, GitCommit: %s, GoVersion: %s", i.Version, i.GitCommit, i.GoVersion)
}

// JSON returns the JSON representation of version info
func (i Info) JSON() (string, error) {
	bytes, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
