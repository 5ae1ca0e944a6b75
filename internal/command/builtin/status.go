package builtin

import (
	"context"
	"fmt"

	"github.com/rashpile/pako-discord/internal/status"
	pkgcmd "github.com/rashpile/pako-discord/pkg/command"
)

// StatusCommand shows bot and host resource usage.
type StatusCommand struct {
	*pkgcmd.Base
	collector status.Collector
}

// NewStatusCommand creates a status command.
func NewStatusCommand(host pkgcmd.Host, collector status.Collector) (*StatusCommand, error) {
	base, err := pkgcmd.New(host, pkgcmd.Definition{
		Name:        "status",
		Aliases:     []string{"stats"},
		Description: "Shows uptime, CPU and memory usage.",
		Type:        pkgcmd.TypeOwner,
		OwnerOnly:   true,
	})
	if err != nil {
		return nil, err
	}
	return &StatusCommand{Base: base, collector: collector}, nil
}

// Run collects and writes the report.
func (s *StatusCommand) Run(ctx context.Context, inv *pkgcmd.Invocation, args []string) error {
	r, err := s.collector.Collect(ctx)
	if err != nil {
		return s.Failure(err)
	}

	output := inv.Output
	fmt.Fprintf(output, "Bot Status\n")
	fmt.Fprintf(output, "──────────\n\n")

	fmt.Fprintf(output, "Uptime:     %s\n", status.FormatDuration(r.Uptime))
	fmt.Fprintf(output, "Goroutines: %d\n", r.Goroutines)
	if r.ProcessRSS > 0 {
		fmt.Fprintf(output, "Process:    %s\n", status.FormatBytes(r.ProcessRSS))
	}
	fmt.Fprintf(output, "CPU:        %5.1f%%\n", r.CPUPercent)
	fmt.Fprintf(output, "Memory:     %5.1f%% (%s / %s)\n",
		r.MemoryPercent,
		status.FormatBytes(r.MemoryUsed),
		status.FormatBytes(r.MemoryTotal),
	)
	fmt.Fprintf(output, "Host:       %s, up %s\n", r.Platform, status.FormatDuration(r.HostUptime))

	return nil
}
