package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"

	"github.com/CrestNiraj12/terminalqa/domain"
)

// Set via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type buildInfo struct {
	Version string
	Commit  string
	Date    string
}

// withModule fills any field still at its placeholder from the module
// version and VCS stamps embedded by the Go toolchain.
func (b buildInfo) withModule(moduleVersion string, settings []debug.BuildSetting) buildInfo {
	stamp := func(key string) string {
		for _, s := range settings {
			if s.Key == key {
				return strings.TrimSpace(s.Value)
			}
		}
		return ""
	}

	if mv := strings.TrimSpace(moduleVersion); b.Version == "dev" && mv != "" && mv != "(devel)" {
		b.Version = mv
	}
	if rev := stamp("vcs.revision"); b.Commit == "none" && rev != "" {
		b.Commit = rev[:min(len(rev), 12)]
	}
	if ts := stamp("vcs.time"); b.Date == "unknown" && ts != "" {
		b.Date = ts
	}
	return b
}

func (b buildInfo) String() string {
	return fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", domain.AppTitle, b.Version, b.Commit, b.Date)
}

func currentBuild() buildInfo {
	b := buildInfo{Version: version, Commit: commit, Date: date}
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return b
	}
	return b.withModule(info.Main.Version, info.Settings)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
