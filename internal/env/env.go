// Package env carries build-time metadata, overridden via -ldflags.
package env

var (
	AppName    = "efidisk"
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)
