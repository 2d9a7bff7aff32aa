package mp3reader

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the semantic version of the mp3reader library.
const Version = "0.3.0"

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string
	Revision  string // VCS revision, "unknown" outside a VCS checkout
	Modified  bool   // built from a dirty working tree
	GoVersion string
}

// ReadBuildInfo returns Version plus the VCS details the go command embeds
// in binaries built from a checkout.
func ReadBuildInfo() BuildInfo {
	info := BuildInfo{Version: Version, Revision: "unknown", GoVersion: runtime.Version()}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String formats the info for --version output, e.g.
// "0.3.0 (rev 1a2b3c4, go1.26.0)".
func (b BuildInfo) String() string {
	rev := b.Revision
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if b.Modified {
		rev += "-dirty"
	}
	return fmt.Sprintf("%s (rev %s, %s)", b.Version, rev, b.GoVersion)
}
