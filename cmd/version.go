package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

// displayVersion returns the canonical semver for release builds and the
// raw value otherwise.
func displayVersion(v string) string {
	if !semver.IsValid(v) {
		if semver.IsValid("v" + v) {
			return semver.Canonical("v" + v)
		}
		return v
	}
	return semver.Canonical(v)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("quizzy", displayVersion(version))
	},
}
