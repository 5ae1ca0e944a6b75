// Package builtin provides built-in commands like help, whois and status.
package builtin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rashpile/pako-discord/internal/command"
	pkgcmd "github.com/rashpile/pako-discord/pkg/command"
)

// CommandLister returns available commands.
type CommandLister interface {
	Get(name string) pkgcmd.Command
	Types(order []pkgcmd.Type) []command.TypeWithCommands
}

// HelpCommand lists available commands or describes one of them.
type HelpCommand struct {
	*pkgcmd.Base
	lister CommandLister
	prefix string
}

// NewHelpCommand creates a help command. prefix is shown before command names.
func NewHelpCommand(host pkgcmd.Host, lister CommandLister, prefix string) (*HelpCommand, error) {
	base, err := pkgcmd.New(host, pkgcmd.Definition{
		Name:        "help",
		Aliases:     []string{"commands", "h"},
		Usage:       "help [command]",
		Description: "Displays a list of all current commands, or information about a specific command.",
		Type:        pkgcmd.TypeInfo,
		Examples:    []string{"help ping"},
	})
	if err != nil {
		return nil, err
	}
	return &HelpCommand{Base: base, lister: lister, prefix: prefix}, nil
}

// Run writes the command list, or details for args[0].
func (h *HelpCommand) Run(ctx context.Context, inv *pkgcmd.Invocation, args []string) error {
	isOwner := inv.Author != nil && pkgcmd.IsOwner(h.Client(), inv.Author.ID)

	if len(args) > 0 {
		name := strings.TrimPrefix(strings.ToLower(args[0]), h.prefix)
		cmd := h.lister.Get(name)
		if cmd == nil || cmd.Disabled() || (cmd.OwnerOnly() && !isOwner) {
			return h.InvalidArgument("unable to find command %q, please check the provided command", args[0])
		}
		return h.describe(inv.Output, cmd)
	}

	return h.list(inv.Output, isOwner)
}

func (h *HelpCommand) list(output io.Writer, isOwner bool) error {
	fmt.Fprintln(output, "All Commands")
	fmt.Fprintf(output, "For more information on a specific command, type `%shelp [command]`.\n", h.prefix)

	for _, group := range h.lister.Types(pkgcmd.StandardTypes()) {
		var names []string
		for _, cmd := range group.Commands {
			if cmd.Disabled() || (cmd.OwnerOnly() && !isOwner) {
				continue
			}
			names = append(names, "`"+cmd.Name()+"`")
		}
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(output, "\n%s [%d]\n%s\n", group.Type, len(names), strings.Join(names, " "))
	}
	return nil
}

func (h *HelpCommand) describe(output io.Writer, cmd pkgcmd.Command) error {
	fmt.Fprintf(output, "Command: `%s`\n", cmd.Name())
	if cmd.Description() != "" {
		fmt.Fprintln(output, cmd.Description())
	}
	fmt.Fprintf(output, "Usage: `%s%s`\n", h.prefix, cmd.Usage())
	fmt.Fprintf(output, "Type: %s\n", cmd.Type())
	if aliases := cmd.Aliases(); len(aliases) > 0 {
		fmt.Fprintf(output, "Aliases: %s\n", strings.Join(aliases, ", "))
	}
	if examples := cmd.Examples(); len(examples) > 0 {
		fmt.Fprintln(output, "Examples:")
		for _, ex := range examples {
			fmt.Fprintf(output, "  %s%s\n", h.prefix, ex)
		}
	}
	if perms := cmd.UserPermissions(); len(perms) > 0 {
		fmt.Fprintf(output, "Requires: %s\n", titles(perms))
	}
	if cmd.OwnerOnly() {
		fmt.Fprintln(output, "Owner only")
	}
	return nil
}

func titles(perms []pkgcmd.Permission) string {
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = p.Title()
	}
	return strings.Join(names, ", ")
}
