package builtin

import (
	"context"
	"fmt"

	pkgcmd "github.com/rashpile/pako-discord/pkg/command"
)

// CommandLoader loads commands from configuration.
type CommandLoader interface {
	Load() ([]pkgcmd.Command, error)
}

// CommandReloader replaces loaded commands in the set.
type CommandReloader interface {
	Reload(commands []pkgcmd.Command) error
}

// ReloadCommand reloads YAML command definitions.
type ReloadCommand struct {
	*pkgcmd.Base
	loader   CommandLoader
	reloader CommandReloader
}

// NewReloadCommand creates a reload command.
func NewReloadCommand(host pkgcmd.Host, loader CommandLoader, reloader CommandReloader) (*ReloadCommand, error) {
	base, err := pkgcmd.New(host, pkgcmd.Definition{
		Name:        "reload",
		Description: "Reloads command definitions from disk.",
		Type:        pkgcmd.TypeOwner,
		OwnerOnly:   true,
	})
	if err != nil {
		return nil, err
	}
	return &ReloadCommand{
		Base:     base,
		loader:   loader,
		reloader: reloader,
	}, nil
}

// Run reloads commands. On any error the current commands stay in place.
func (r *ReloadCommand) Run(ctx context.Context, inv *pkgcmd.Invocation, args []string) error {
	commands, err := r.loader.Load()
	if err != nil {
		return r.Failure(fmt.Errorf("load commands: %w", err))
	}

	if err := r.reloader.Reload(commands); err != nil {
		return r.Failure(err)
	}

	fmt.Fprintf(inv.Output, "Reloaded %d commands\n", len(commands))
	return nil
}
