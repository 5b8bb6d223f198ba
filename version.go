package linguahub

// Version information for linguahub.
// These values can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/forumkit/linguahub.Version=1.0.0"
const (
	// Name is the application name.
	Name = "linguahub"

	// Description is a short description of the application.
	Description = "HTML-preserving forum content translation via the LinguaHub API"

	// Version is the semantic version of the application.
	Version = "0.1.0"

	// Repository is the source code repository URL.
	Repository = "https://github.com/forumkit/linguahub"

	// License is the software license.
	License = "MIT"
)

// BuildInfo contains build-time information, typically set via ldflags.
var (
	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// GitBranch is the git branch name.
	GitBranch = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"

	// GoVersion is the Go version used to build.
	GoVersion = "unknown"
)

// FullVersion returns the version string with optional build info.
func FullVersion() string {
	v := Version
	if GitCommit != "unknown" && GitCommit != "" {
		short := GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		v += "+" + short
	}
	return v
}

// UserAgent returns a user agent string for HTTP requests.
func UserAgent() string {
	return Name + "/" + Version
}
