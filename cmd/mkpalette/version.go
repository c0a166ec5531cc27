package main

import (
	"fmt"
	"runtime/debug"
)

// Stamped at link time:
//
//	go build -ldflags "-X main.version=v1.2.0 -X main.commit=$(git rev-parse --short HEAD)" ./cmd/mkpalette
var (
	version = ""
	commit  = ""
	date    = ""
)

// readBuildInfo is swapped out in tests.
var readBuildInfo = debug.ReadBuildInfo

// buildVersion prefers the stamped version, then the module version recorded
// by "go install ...@version", then the VCS revision of a local build.
func buildVersion() string {
	if version != "" {
		return version
	}
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "dev"
}

// versionLine is printed by -version.
func versionLine() string {
	line := "mkpalette " + buildVersion()
	if commit != "" {
		line += fmt.Sprintf(" (commit %s)", commit)
	}
	if date != "" {
		line += " built " + date
	}
	return line
}
