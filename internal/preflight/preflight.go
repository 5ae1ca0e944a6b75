// Package preflight decides whether a caller may run a command in a channel.
package preflight

import (
	"fmt"
	"strings"

	pkgcmd "github.com/rashpile/pako-discord/pkg/command"
)

// Reason says why a command was refused.
type Reason string

const (
	ReasonDisabled          Reason = "disabled"
	ReasonOwnerOnly         Reason = "owner only"
	ReasonClientPermissions Reason = "bot is missing permissions"
	ReasonUserPermissions   Reason = "caller is missing permissions"
)

// Denied is returned when a command must not run.
type Denied struct {
	Command string
	Reason  Reason
	Missing []pkgcmd.Permission
}

func (d *Denied) Error() string {
	if len(d.Missing) == 0 {
		return fmt.Sprintf("%s: %s", d.Command, d.Reason)
	}
	names := make([]string, len(d.Missing))
	for i, p := range d.Missing {
		names[i] = string(p)
	}
	return fmt.Sprintf("%s: %s: %s", d.Command, d.Reason, strings.Join(names, ", "))
}

// PermissionSource resolves effective channel permissions.
// *guild.State satisfies it.
type PermissionSource interface {
	Permissions(userID, channelID string) (int64, error)
	BotID() string
}

// Caller identifies who runs a command and where.
type Caller struct {
	UserID    string
	ChannelID string
}

// Checker runs the checks a dispatcher performs before Run.
type Checker struct {
	host  pkgcmd.Host
	perms PermissionSource
}

// NewChecker creates a checker.
func NewChecker(host pkgcmd.Host, perms PermissionSource) *Checker {
	return &Checker{host: host, perms: perms}
}

// Check returns nil when caller may run cmd, a *Denied when the command is
// refused, or another error when permissions could not be resolved.
// Checks run in order: disabled, owner only, bot permissions, caller
// permissions. The owner skips the caller permission check.
func (c *Checker) Check(cmd pkgcmd.Command, caller Caller) error {
	if cmd.Disabled() {
		return &Denied{Command: cmd.Name(), Reason: ReasonDisabled}
	}

	isOwner := pkgcmd.IsOwner(c.host, caller.UserID)
	if cmd.OwnerOnly() && !isOwner {
		return &Denied{Command: cmd.Name(), Reason: ReasonOwnerOnly}
	}

	missing, err := c.missing(c.perms.BotID(), caller.ChannelID, cmd.ClientPermissions())
	if err != nil {
		return fmt.Errorf("bot permissions: %w", err)
	}
	if len(missing) > 0 {
		return &Denied{Command: cmd.Name(), Reason: ReasonClientPermissions, Missing: missing}
	}

	if isOwner {
		return nil
	}

	missing, err = c.missing(caller.UserID, caller.ChannelID, cmd.UserPermissions())
	if err != nil {
		return fmt.Errorf("caller permissions: %w", err)
	}
	if len(missing) > 0 {
		return &Denied{Command: cmd.Name(), Reason: ReasonUserPermissions, Missing: missing}
	}

	return nil
}

func (c *Checker) missing(userID, channelID string, required []pkgcmd.Permission) ([]pkgcmd.Permission, error) {
	if len(required) == 0 {
		return nil, nil
	}

	granted, err := c.perms.Permissions(userID, channelID)
	if err != nil {
		return nil, err
	}

	adminBit, _ := pkgcmd.PermissionAdministrator.Bit()
	if granted&adminBit != 0 {
		return nil, nil
	}
	return pkgcmd.Missing(required, granted), nil
}
