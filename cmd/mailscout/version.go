package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Release metadata injected via ldflags. A plain `go build` leaves them
// empty and the binary falls back to its embedded build information.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildMetadata is the resolved identity of the running binary.
type buildMetadata struct {
	version string
	commit  string
	date    string
	goVer   string
}

// resolveBuildMetadata merges ldflags values with debug.ReadBuildInfo,
// preferring ldflags. Fields that cannot be resolved read "unknown".
func resolveBuildMetadata() buildMetadata {
	meta := buildMetadata{
		version: version,
		commit:  commit,
		date:    date,
		goVer:   runtime.Version(),
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if meta.version == "" {
			meta.version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if meta.commit == "" {
					meta.commit = shortRevision(setting.Value)
				}
			case "vcs.time":
				if meta.date == "" {
					meta.date = setting.Value
				}
			}
		}
	}

	if meta.version == "" {
		meta.version = "(devel)"
	}
	if meta.commit == "" {
		meta.commit = "unknown"
	}
	if meta.date == "" {
		meta.date = "unknown"
	}
	return meta
}

// shortRevision abbreviates a VCS revision hash to seven characters.
func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit revision, and build date of mailscout.`,
		Run: func(cmd *cobra.Command, _ []string) {
			meta := resolveBuildMetadata()
			fmt.Fprintf(cmd.OutOrStdout(), "mailscout %s (revision %s, built %s, %s)\n",
				meta.version, meta.commit, meta.date, meta.goVer)
		},
	}
}
