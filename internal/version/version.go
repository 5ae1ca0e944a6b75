// Package version provides build version information.
// Variables are set at build time via ldflags.
package version

import (
	"fmt"
	"runtime"

	"github.com/bwmarrin/discordgo"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns a one-line summary of the build.
func String() string {
	return fmt.Sprintf("pako-discord %s (%s, built %s, %s, discordgo %s)",
		Version, Commit, BuildDate, runtime.Version(), discordgo.VERSION)
}
