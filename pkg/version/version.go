// Package version holds the build version of rv.
package version

// Version is overridden at build time with -ldflags "-X ...Version=vX.Y.Z".
var Version = "v0.1.0"

// ExportFormat is the version string written into export documents.
const ExportFormat = "1.0.0"
