// Package version holds the build version string.
package version

// Version is overridden at release time via -ldflags.
var Version = "1.0.1"
