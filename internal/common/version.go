package common

// Version is the application version, overridable at build time with
// -ldflags "-X github.com/ternarybob/gleaner/internal/common.Version=…".
var Version = "0.1.0"

// GetVersion returns the application version string.
func GetVersion() string {
	return Version
}
