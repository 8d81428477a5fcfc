package types

import "runtime"

// Version information for the htmltext library.
const (
	Version = "0.3.0"
	Name    = "htmltext"
)

// BuildInfo contains version and build information for the htmltext library.
// It includes the version number, name, and Go version used to build the binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Name      string `json:"name"`
	GoVersion string `json:"go_version"`
}

// GetBuildInfo returns the current version information.
// This is useful for displaying version information in logs or help output.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Name:      Name,
		GoVersion: runtime.Version(),
	}
}
