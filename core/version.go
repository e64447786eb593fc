package core

// Version is the application version, set at build time via ldflags:
//
//	go build -ldflags "-X github.com/Kothajagadish22/Gemini-Finance-AI/core.Version=v1.0.0" .
var Version = "dev"

// GitCommit is the git commit hash, set at build time via ldflags.
var GitCommit = "unknown"

// GetVersionInfo returns a formatted version information string.
//
// Example: "v1.0.0 (commit abc1234)"
func GetVersionInfo() string {
	return Version + " (commit " + GitCommit + ")"
}
