package builtin

import (
	"context"
	"fmt"
	"strings"

	pkgcmd "github.com/rashpile/pako-discord/pkg/command"
)

// WhoisCommand shows a member's profile.
type WhoisCommand struct {
	*pkgcmd.Base
}

// NewWhoisCommand creates a whois command.
func NewWhoisCommand(host pkgcmd.Host) (*WhoisCommand, error) {
	base, err := pkgcmd.New(host, pkgcmd.Definition{
		Name:        "whois",
		Aliases:     []string{"userinfo", "ui"},
		Usage:       "whois [user mention]",
		Description: "Fetches a user's information. If no user is given, your own information will be displayed.",
		Type:        pkgcmd.TypeInfo,
		Examples:    []string{"whois <@123>"},
	})
	if err != nil {
		return nil, err
	}
	return &WhoisCommand{Base: base}, nil
}

// Run describes the mentioned member, or the caller.
func (w *WhoisCommand) Run(ctx context.Context, inv *pkgcmd.Invocation, args []string) error {
	member := inv.Member
	if len(args) > 0 {
		m, ok := pkgcmd.ResolveMember(inv, args[0])
		if !ok {
			return w.InvalidArgument("please mention a user or provide a valid user ID")
		}
		member = m
	}
	if member == nil || member.User == nil {
		return w.InvalidArgument("please mention a user or provide a valid user ID")
	}

	user := member.User
	fmt.Fprintf(inv.Output, "Username: %s\n", user.Username)
	if member.Nick != "" {
		fmt.Fprintf(inv.Output, "Nickname: %s\n", member.Nick)
	}
	fmt.Fprintf(inv.Output, "ID:       %s\n", user.ID)
	if user.Bot {
		fmt.Fprintln(inv.Output, "Bot:      yes")
	}
	if !member.JoinedAt.IsZero() {
		fmt.Fprintf(inv.Output, "Joined:   %s\n", member.JoinedAt.UTC().Format("Jan 2, 2006"))
	}

	var roles []string
	for _, id := range member.Roles {
		if inv.Guild == nil {
			break
		}
		if role, ok := inv.Guild.Role(id); ok {
			roles = append(roles, role.Name)
		}
	}
	if len(roles) == 0 {
		fmt.Fprintln(inv.Output, "Roles:    none")
	} else {
		fmt.Fprintf(inv.Output, "Roles:    %s\n", strings.Join(roles, ", "))
	}
	return nil
}
