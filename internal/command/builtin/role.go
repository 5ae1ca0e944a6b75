package builtin

import (
	"context"
	"fmt"

	pkgcmd "github.com/rashpile/pako-discord/pkg/command"
)

// RoleCommand shows information about a role.
type RoleCommand struct {
	*pkgcmd.Base
}

// NewRoleCommand creates a role command.
func NewRoleCommand(host pkgcmd.Host) (*RoleCommand, error) {
	base, err := pkgcmd.New(host, pkgcmd.Definition{
		Name:        "role",
		Aliases:     []string{"roleinfo", "ri"},
		Usage:       "role <role mention>",
		Description: "Fetches information about the provided role.",
		Type:        pkgcmd.TypeInfo,
		Examples:    []string{"role <@&456>"},
	})
	if err != nil {
		return nil, err
	}
	return &RoleCommand{Base: base}, nil
}

// Run describes the mentioned role.
func (r *RoleCommand) Run(ctx context.Context, inv *pkgcmd.Invocation, args []string) error {
	if len(args) == 0 {
		return r.InvalidArgument("please mention a role or provide a valid role ID")
	}
	role, ok := pkgcmd.ResolveRole(inv, args[0])
	if !ok {
		return r.InvalidArgument("please mention a role or provide a valid role ID")
	}

	fmt.Fprintf(inv.Output, "Role:        %s\n", role.Name)
	fmt.Fprintf(inv.Output, "ID:          %s\n", role.ID)
	fmt.Fprintf(inv.Output, "Color:       #%06X\n", role.Color)
	fmt.Fprintf(inv.Output, "Position:    %d\n", role.Position)
	fmt.Fprintf(inv.Output, "Mentionable: %t\n", role.Mentionable)

	perms := pkgcmd.FromMask(role.Permissions)
	if len(perms) == 0 {
		fmt.Fprintln(inv.Output, "Permissions: none")
		return nil
	}
	fmt.Fprintf(inv.Output, "Permissions: %s\n", titles(perms))
	return nil
}
