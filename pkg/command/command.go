// Package command defines the base every bot command is built on.
//
// A command is created once from a Definition with New, which validates the
// metadata against the hosting client and fills in defaults. Concrete
// commands embed *Base and override Run:
//
//	type Ping struct{ *command.Base }
//
//	func (p *Ping) Run(ctx context.Context, inv *command.Invocation, args []string) error {
//		_, err := fmt.Fprintln(inv.Output, "pong")
//		return err
//	}
//
// Permission, owner and disabled metadata is descriptive: the dispatcher
// checks it before calling Run.
package command

import (
	"context"
	"fmt"
	"io"

	"github.com/bwmarrin/discordgo"
)

// Command is the contract the dispatcher works with.
type Command interface {
	Name() string
	Aliases() []string
	Usage() string
	Description() string
	Type() Type
	ClientPermissions() []Permission
	UserPermissions() []Permission
	Examples() []string
	OwnerOnly() bool
	Disabled() bool

	// Definition returns the validated, defaulted metadata.
	Definition() Definition

	// Run executes the command with arguments already split from the
	// message. Side effects (replies, external calls) belong to the
	// implementation; ctx carries cancellation from the dispatcher.
	Run(ctx context.Context, inv *Invocation, args []string) error
}

// Host is the hosting client a command is registered with. It is shared and
// never modified by this package.
type Host interface {
	// HasType reports whether t is a recognized command category.
	HasType(t Type) bool
	// HasPermission reports whether p is part of the platform vocabulary.
	HasPermission(p Permission) bool
	// OwnerID returns the user ID of the bot owner.
	OwnerID() string
}

// IsOwner reports whether userID is the owner of host. An unset owner
// matches nobody, not even an empty user ID.
func IsOwner(host Host, userID string) bool {
	if host == nil {
		return false
	}
	owner := host.OwnerID()
	return owner != "" && owner == userID
}

// Invocation is the context of one incoming command message.
type Invocation struct {
	GuildID   string
	ChannelID string
	Author    *discordgo.User
	Member    *discordgo.Member  // author as a guild member, nil outside guilds
	Message   *discordgo.Message // originating message, may be nil
	Guild     Directory          // cached member and role directory, may be nil
	Output    io.Writer          // reply sink supplied by the dispatcher
}

// Base holds validated metadata and supplies every Command method except a
// working Run.
type Base struct {
	client Host
	def    Definition
}

// New validates def and returns a command with all defaults applied.
// A returned error is a *DefinitionError.
func New(client Host, def Definition) (*Base, error) {
	if err := Validate(client, def); err != nil {
		return nil, err
	}
	return &Base{
		client: client,
		def:    normalize(def),
	}, nil
}

// MustNew is like New but panics on an invalid definition. Use it for
// commands built during startup.
func MustNew(client Host, def Definition) *Base {
	b, err := New(client, def)
	if err != nil {
		panic(err)
	}
	return b
}

// Client returns the hosting client.
func (b *Base) Client() Host { return b.client }

// Name returns the primary command name.
func (b *Base) Name() string { return b.def.Name }

// Aliases returns alternate names in declaration order.
func (b *Base) Aliases() []string { return cloneOrEmpty(b.def.Aliases) }

// Usage returns the argument signature, defaulting to the name.
func (b *Base) Usage() string { return b.def.Usage }

// Description returns the help text.
func (b *Base) Description() string { return b.def.Description }

// Type returns the command category.
func (b *Base) Type() Type { return b.def.Type }

// ClientPermissions returns what the bot must hold in the channel.
func (b *Base) ClientPermissions() []Permission { return cloneOrEmpty(b.def.ClientPermissions) }

// UserPermissions returns what the caller must hold. Empty means anyone.
func (b *Base) UserPermissions() []Permission { return cloneOrEmpty(b.def.UserPermissions) }

// Examples returns example invocations.
func (b *Base) Examples() []string { return cloneOrEmpty(b.def.Examples) }

// OwnerOnly reports whether only the bot owner may run the command.
func (b *Base) OwnerOnly() bool { return b.def.OwnerOnly }

// Disabled reports whether the dispatcher must refuse the command.
func (b *Base) Disabled() bool { return b.def.Disabled }

// Definition returns a copy of the normalized metadata.
func (b *Base) Definition() Definition { return b.def.clone() }

// ErrorTypes lists the failure kinds a command body may return.
func (b *Base) ErrorTypes() []ErrorKind {
	return []ErrorKind{KindInvalidArgument, KindCommandFailure}
}

// Run always fails. Commands override it.
func (b *Base) Run(ctx context.Context, inv *Invocation, args []string) error {
	return notImplemented(b.def.Name)
}

// InvalidArgument builds a KindInvalidArgument error for this command.
func (b *Base) InvalidArgument(format string, a ...any) error {
	return &Error{
		Kind:    KindInvalidArgument,
		Command: b.def.Name,
		Err:     fmt.Errorf(format, a...),
	}
}

// Failure wraps err as a KindCommandFailure error for this command.
func (b *Base) Failure(err error) error {
	return &Error{
		Kind:    KindCommandFailure,
		Command: b.def.Name,
		Err:     err,
	}
}
