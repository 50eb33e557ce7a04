//go:build !dev

// Package trace provides runtime tracing for development builds.
// This is the release version with no-op stubs.
package trace

import "context"

// EnvVar names the file the trace is written to in dev builds
const EnvVar = "RLCOMPLETE_TRACE"

// Init is a no-op in release builds.
func Init() func() {
	return func() {}
}

// Region is a no-op in release builds.
func Region(_ context.Context, _ string) func() {
	return func() {}
}

// Log is a no-op in release builds.
func Log(_ context.Context, _, _ string) {
}

// IsEnabled returns true if tracing is enabled.
func IsEnabled() bool {
	return false
}
