// Package version reports what build is running. The variables may be set
// with -ldflags "-X boxview/internal/version.Commit=..."; when they are not,
// the VCS stamp the go command embeds is used.
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "0.1.0"
	Commit  = ""
	Date    = ""
)

const shortCommit = 12

// String returns a one-line description of the build.
func String() string {
	commit, date := Commit, Date
	if commit == "" || date == "" {
		c, d := vcsStamp()
		if commit == "" {
			commit = c
		}
		if date == "" {
			date = d
		}
	}
	if commit == "" {
		commit = "unknown"
	}
	if date == "" {
		date = "unknown"
	}
	if len(commit) > shortCommit {
		commit = commit[:shortCommit]
	}
	return fmt.Sprintf("boxview %s (commit %s, built %s)", Version, commit, date)
}

func vcsStamp() (commit, date string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
		case "vcs.time":
			date = s.Value
		}
	}
	return commit, date
}
