package builtin

import (
	"context"
	"fmt"
	"time"

	pkgcmd "github.com/rashpile/pako-discord/pkg/command"
)

// PingCommand answers with the time it took the message to reach the bot.
type PingCommand struct {
	*pkgcmd.Base
	now func() time.Time
}

// NewPingCommand creates a ping command.
func NewPingCommand(host pkgcmd.Host) (*PingCommand, error) {
	base, err := pkgcmd.New(host, pkgcmd.Definition{
		Name:        "ping",
		Description: "Gets Pako's current latency.",
		Type:        pkgcmd.TypeFun,
	})
	if err != nil {
		return nil, err
	}
	return &PingCommand{Base: base, now: time.Now}, nil
}

// Run writes "Pong!" and the message latency when the message is known.
func (p *PingCommand) Run(ctx context.Context, inv *pkgcmd.Invocation, args []string) error {
	if inv.Message == nil || inv.Message.Timestamp.IsZero() {
		fmt.Fprintln(inv.Output, "Pong!")
		return nil
	}

	latency := p.now().Sub(inv.Message.Timestamp)
	fmt.Fprintf(inv.Output, "Pong! Latency: %dms\n", latency.Milliseconds())
	return nil
}
