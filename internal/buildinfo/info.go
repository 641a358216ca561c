// Package buildinfo holds version metadata injected at build time.
package buildinfo

// Set via -ldflags at release build; the defaults identify a dev build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
