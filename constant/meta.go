// Package constant defines immutable application-level identifiers.
package constant

const (
	// Reel is the canonical application identifier used for filesystem paths and CLI branding.
	Reel = "reel"

	// Version is the current application semantic version string.
	Version = "0.1.0"
)

// Build metadata, set with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
