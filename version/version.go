package version

import "runtime/debug"

// Version is empty unless set when linking, e.g.
// go build -ldflags "-X github.com/vsariola/wavescore/version.Version=$(git describe --dirty)" ./cmd/wavescore
var Version string

// Hash is the short VCS revision of the build, "-dirty" appended if the tree
// had local modifications, or empty when no VCS information was stamped.
var Hash = vcsRevision()

var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	return Hash
}()

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	settings := map[string]string{}
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	rev := settings["vcs.revision"]
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if rev != "" && settings["vcs.modified"] == "true" {
		rev += "-dirty"
	}
	return rev
}
