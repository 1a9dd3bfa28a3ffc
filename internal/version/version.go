// internal/version/version.go
package version

// Version is stamped by release builds via -ldflags; "dev" otherwise.
var Version = "dev"
