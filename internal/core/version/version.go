// Package version reports the build stamp of the binary.
package version

// BuildInfo holds version information about the build.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Set via -ldflags "-X 'pixivrank/internal/core/version.version=v0.1.0'
// -X 'pixivrank/internal/core/version.commit=abcd' -X 'pixivrank/internal/core/version.date=2026-10-19'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information.
func Info() BuildInfo {
	return BuildInfo{Version: version, Commit: commit, Date: date}
}

// String renders the stamp on one line, e.g. "dev (none, unknown)".
func (b BuildInfo) String() string {
	return b.Version + " (" + b.Commit + ", " + b.Date + ")"
}

// Fields returns the stamp as static log fields.
func (b BuildInfo) Fields() map[string]string {
	return map[string]string{"version": b.Version, "commit": b.Commit}
}
