// Package version exposes build information injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time, e.g.
//
//	go build -ldflags "-X github.com/longkey1/chatbot/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildTime = "unknown"
)

// Short returns only the version number.
func Short() string {
	return Version
}

// Info returns the full multi-line version description.
func Info() string {
	return fmt.Sprintf("Version:    %s\nCommit SHA: %s\nBuild Time: %s\nGo Version: %s",
		Version, CommitSHA, BuildTime, runtime.Version())
}
