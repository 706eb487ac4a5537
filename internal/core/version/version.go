// Package version reports the build stamped in at link time:
//
//	go build -ldflags "-X videotube/internal/core/version.version=v0.3.0 -X videotube/internal/core/version.commit=abc1234"
package version

import "runtime/debug"

var (
	version = "dev"
	commit  = ""
	date    = "unknown"
)

// BuildInfo is what /meta/version returns
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Info returns the stamped build; the commit falls back to the vcs revision go embeds
func Info() BuildInfo {
	bi := BuildInfo{Version: version, Commit: commit, Date: date}
	if info, ok := debug.ReadBuildInfo(); ok {
		bi.Go = info.GoVersion
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && bi.Commit == "" {
				bi.Commit = s.Value
			}
		}
	}
	if len(bi.Commit) > 7 {
		bi.Commit = bi.Commit[:7]
	}
	if bi.Commit == "" {
		bi.Commit = "none"
	}
	return bi
}

// UserAgent returns product/version, e.g. videotube-cli/dev
func UserAgent(product string) string { return product + "/" + version }
