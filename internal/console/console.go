// Package console runs command lines against a local command set, the way a
// gateway dispatcher would, without a Discord connection.
package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/rashpile/pako-discord/internal/audit"
	"github.com/rashpile/pako-discord/internal/preflight"
	pkgcmd "github.com/rashpile/pako-discord/pkg/command"
)

var (
	// ErrEmptyLine is returned for a line without a command name.
	ErrEmptyLine = errors.New("empty command line")
	// ErrUnknownCommand is returned when no command has the given name or alias.
	ErrUnknownCommand = errors.New("unknown command")
)

// Outcomes recorded besides the command error kinds.
const (
	OutcomeOK     = "ok"
	OutcomeDenied = "denied"
	OutcomeError  = "error"
)

// Lookup finds commands by name or alias.
type Lookup interface {
	Get(name string) pkgcmd.Command
}

// Guild is the directory and permission view of the guild commands run in.
type Guild interface {
	pkgcmd.Directory
	preflight.PermissionSource
	GuildID() string
}

// Config holds console settings.
type Config struct {
	Prefix    string
	ChannelID string
	Timeout   time.Duration
	MaxOutput int
}

// Result describes one executed line.
type Result struct {
	Command   string
	Args      []string
	Output    string
	Truncated bool
	Outcome   string
	Duration  time.Duration
	Err       error // command error or *preflight.Denied
}

// Console executes command lines.
type Console struct {
	commands Lookup
	guild    Guild
	checker  *preflight.Checker
	audit    audit.Logger
	cfg      Config
	now      func() time.Time
}

// New creates a console. A nil logger disables auditing.
func New(commands Lookup, host pkgcmd.Host, guild Guild, logger audit.Logger, cfg Config) *Console {
	if logger == nil {
		logger = audit.NopLogger{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxOutput <= 0 {
		cfg.MaxOutput = 2000
	}
	return &Console{
		commands: commands,
		guild:    guild,
		checker:  preflight.NewChecker(host, guild),
		audit:    logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Exec runs line as userID. Refusals and command errors are reported in the
// Result; the returned error is for lines that never reached a command and
// for commands without a Run implementation. The latter is a programming
// error and callers must stop (see command.IsImplementationError).
func (c *Console) Exec(ctx context.Context, userID, line string) (*Result, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrEmptyLine
	}

	name := strings.ToLower(strings.TrimPrefix(fields[0], c.cfg.Prefix))
	if name == "" {
		return nil, ErrEmptyLine
	}

	cmd := c.commands.Get(name)
	if cmd == nil {
		slog.Debug("unknown command", "command", name, "user", userID)
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	member, ok := c.guild.Member(userID)
	if !ok {
		return nil, fmt.Errorf("user %s is not a member of guild %s", userID, c.guild.GuildID())
	}

	res := &Result{Command: cmd.Name(), Args: fields[1:]}
	logger := slog.With("command", cmd.Name(), "user", userID, "channel", c.cfg.ChannelID)

	start := c.now()
	defer func() {
		res.Duration = c.now().Sub(start)
		c.record(ctx, logger, userID, res, start)
	}()

	if err := c.checker.Check(cmd, preflight.Caller{UserID: userID, ChannelID: c.cfg.ChannelID}); err != nil {
		var denied *preflight.Denied
		if !errors.As(err, &denied) {
			res.Outcome = OutcomeError
			res.Err = err
			return nil, err
		}
		logger.Info("command refused", "reason", denied.Reason, "missing", denied.Missing)
		res.Outcome = OutcomeDenied
		res.Err = denied
		return res, nil
	}

	var buf bytes.Buffer
	out := newLimitWriter(&buf, c.cfg.MaxOutput)
	inv := &pkgcmd.Invocation{
		GuildID:   c.guild.GuildID(),
		ChannelID: c.cfg.ChannelID,
		Author:    member.User,
		Member:    member,
		Message: &discordgo.Message{
			ChannelID: c.cfg.ChannelID,
			GuildID:   c.guild.GuildID(),
			Content:   line,
			Author:    member.User,
			Timestamp: start,
		},
		Guild:  c.guild,
		Output: out,
	}

	execCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	logger.Info("executing command", "args_count", len(res.Args))
	res.Err = cmd.Run(execCtx, inv, res.Args)
	res.Output = buf.String()
	res.Truncated = out.truncated
	res.Outcome = classify(res.Err)

	switch res.Outcome {
	case OutcomeOK:
	case string(pkgcmd.KindInvalidArgument):
		logger.Info("invalid argument", "error", res.Err)
	case string(pkgcmd.KindNotImplemented):
		logger.Error("command has no implementation", "error", res.Err)
		return nil, res.Err
	default:
		logger.Error("command execution failed", "error", res.Err)
	}

	return res, nil
}

// classify maps a Run error to an audit outcome.
func classify(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if kind := pkgcmd.KindOf(err); kind != "" {
		return string(kind)
	}
	return OutcomeError
}

func (c *Console) record(ctx context.Context, logger *slog.Logger, userID string, res *Result, start time.Time) {
	entry := audit.Entry{
		Timestamp: start,
		GuildID:   c.guild.GuildID(),
		ChannelID: c.cfg.ChannelID,
		UserID:    userID,
		Command:   res.Command,
		Args:      strings.Join(res.Args, " "),
		Outcome:   res.Outcome,
		Duration:  res.Duration,
	}
	if err := c.audit.Log(context.WithoutCancel(ctx), entry); err != nil {
		logger.Error("failed to write audit entry", "error", err)
	}
}
