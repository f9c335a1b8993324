// Package version holds the build version shared by both binaries.
package version

// Version is set at build time via ldflags.
var Version = "dev"
