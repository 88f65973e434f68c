package version

// Version is overridden at build time via -ldflags "-X snapguide/internal/version.Version=...".
var Version = "0.1.0-dev"

// String returns the build version.
func String() string { return Version }
