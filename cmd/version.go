// Package cmd contains building blocks shared by the cobra commands of the warehouse.
package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Version returns a `version` command to be added to any cobra (root) command.
func Version(name string) *cobra.Command {
	short := "Print " + name + " version"
	if strings.TrimSpace(name) == "" {
		short = "Print version"
	}

	var onlyHash bool

	cmd := &cobra.Command{
		Use:                   "version",
		Short:                 short,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		Run: func(cmd *cobra.Command, _ []string) {
			info := ReadVersion()

			if onlyHash {
				fmt.Fprintln(cmd.OutOrStdout(), info.Hash)
				return
			}

			prefix := "version: "
			if strings.TrimSpace(name) != "" {
				prefix = name + " " + prefix
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s%s from %s (%s)\n", prefix, info.Hash, info.Time, info.GoVersion)
		},
	}

	cmd.Flags().BoolVar(&onlyHash, "short", false, "print the commit hash only")

	return cmd
}

// VersionInfo describes the build of the running binary.
type VersionInfo struct {
	Hash      string
	Time      string
	GoVersion string
}

// ReadVersion returns the last git hash and commit timestamp.
// If the binary contains uncommitted code or was not built with `go build`,
// the hash is @latest and the time is now.
func ReadVersion() VersionInfo {
	hash, timestamp, modified := readBuildInfo()

	if modified || hash == "" {
		hash = "@latest"
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	return VersionInfo{
		Hash:      hash,
		Time:      timestamp,
		GoVersion: runtime.Version(),
	}
}

// readBuildInfo returns the last commit hash, commit timestamp, and if the binary contains uncommitted code.
// The information needs to be available to the `go build` command.
// `go run` and `go test` do not contain that info.
func readBuildInfo() (string, string, bool) {
	var (
		commitHash  string
		commitTS    string
		vcsModified bool
	)

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", "", false
	}

	for _, setting := range info.Settings { // called from a Go test info.Settings are always empty: []
		switch setting.Key {
		case "vcs.revision":
			commitHash = setting.Value
		case "vcs.time":
			commitTS = setting.Value
		case "vcs.modified":
			vcsModified = setting.Value == "true"
		}
	}

	return commitHash, commitTS, vcsModified
}
