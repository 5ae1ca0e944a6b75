package builtin

import (
	"context"
	"fmt"

	"github.com/rashpile/pako-discord/internal/version"
	pkgcmd "github.com/rashpile/pako-discord/pkg/command"
)

// VersionCommand shows the current bot version.
type VersionCommand struct {
	*pkgcmd.Base
}

// NewVersionCommand creates a version command.
func NewVersionCommand(host pkgcmd.Host) (*VersionCommand, error) {
	base, err := pkgcmd.New(host, pkgcmd.Definition{
		Name:        "version",
		Description: "Shows the current bot version.",
		Type:        pkgcmd.TypeInfo,
	})
	if err != nil {
		return nil, err
	}
	return &VersionCommand{Base: base}, nil
}

// Run writes the version information.
func (v *VersionCommand) Run(ctx context.Context, inv *pkgcmd.Invocation, args []string) error {
	fmt.Fprintf(inv.Output, "Version:    %s\n", version.Version)
	fmt.Fprintf(inv.Output, "Commit:     %s\n", version.Commit)
	fmt.Fprintf(inv.Output, "Build Date: %s\n", version.BuildDate)
	return nil
}
