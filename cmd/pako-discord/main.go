// pako-discord validates and runs Discord bot commands against a local guild
// snapshot.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rashpile/pako-discord/internal/audit"
	"github.com/rashpile/pako-discord/internal/client"
	"github.com/rashpile/pako-discord/internal/command"
	"github.com/rashpile/pako-discord/internal/command/builtin"
	"github.com/rashpile/pako-discord/internal/config"
	"github.com/rashpile/pako-discord/internal/console"
	"github.com/rashpile/pako-discord/internal/guild"
	"github.com/rashpile/pako-discord/internal/status"
	"github.com/rashpile/pako-discord/internal/version"
	pkgcmd "github.com/rashpile/pako-discord/pkg/command"
)

const usage = `usage: pako-discord [flags] <command>

commands:
  check                   validate every command and list them
  exec -user <id> <line>  run one command line as a guild member
  repl -user <id>         read command lines from stdin
  version                 print build information

flags:
`

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*configPath, *verbose, flag.Args()); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, verbose bool, args []string) error {
	if args[0] == "version" {
		fmt.Println(version.String())
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	setupLogging(cfg, verbose)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch args[0] {
	case "check":
		a, err := newApp(configPath, cfg)
		if err != nil {
			return err
		}
		return a.check(os.Stdout)
	case "exec", "repl":
		return runConsole(ctx, configPath, cfg, args[0], args[1:])
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func setupLogging(cfg *config.Config, verbose bool) {
	level, _ := cfg.Log.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// app holds the command set and everything it was built from.
type app struct {
	cfg    *config.Config
	client *client.Client
	set    *command.Set
	loader *command.Loader
}

func newApp(configPath string, cfg *config.Config) (*app, error) {
	commandsDir := cfg.ExpandPath(configPath, cfg.CommandsDir)
	slog.Info("configuration loaded", "commands_dir", commandsDir, "owner", cfg.Client.OwnerID)

	types := make([]pkgcmd.Type, len(cfg.Client.Types))
	for i, t := range cfg.Client.Types {
		types[i] = pkgcmd.Type(t)
	}
	host := client.New(client.Config{OwnerID: cfg.Client.OwnerID, Types: types})

	set := command.NewSet()
	loader := command.NewLoader(commandsDir, host)

	builtins, err := newBuiltins(host, set, loader, cfg.Client.Prefix)
	if err != nil {
		return nil, fmt.Errorf("build built-in commands: %w", err)
	}
	if err := set.Register(builtins...); err != nil {
		return nil, fmt.Errorf("register built-in commands: %w", err)
	}

	loaded, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if err := set.Reload(loaded); err != nil {
		return nil, fmt.Errorf("register yaml commands: %w", err)
	}
	slog.Info("loaded yaml commands", "count", len(loaded))

	return &app{cfg: cfg, client: host, set: set, loader: loader}, nil
}

func newBuiltins(host pkgcmd.Host, set *command.Set, loader *command.Loader, prefix string) ([]pkgcmd.Command, error) {
	var cmds []pkgcmd.Command
	add := func(cmd pkgcmd.Command, err error) error {
		if err != nil {
			return err
		}
		cmds = append(cmds, cmd)
		return nil
	}

	err := errors.Join(
		add(builtin.NewHelpCommand(host, set, prefix)),
		add(builtin.NewPingCommand(host)),
		add(builtin.NewWhoisCommand(host)),
		add(builtin.NewRoleCommand(host)),
		add(builtin.NewStatusCommand(host, status.NewHostCollector())),
		add(builtin.NewVersionCommand(host)),
		add(builtin.NewReloadCommand(host, loader, set)),
	)
	return cmds, err
}

// check prints the command set grouped by type.
func (a *app) check(w io.Writer) error {
	for _, group := range a.set.Types(a.client.Types()) {
		fmt.Fprintf(w, "%s\n", group.Type)
		for _, cmd := range group.Commands {
			var flags []string
			if cmd.OwnerOnly() {
				flags = append(flags, "owner")
			}
			if cmd.Disabled() {
				flags = append(flags, "disabled")
			}
			line := fmt.Sprintf("  %-12s %s", cmd.Name(), cmd.Usage())
			if len(flags) > 0 {
				line += " [" + strings.Join(flags, ",") + "]"
			}
			fmt.Fprintln(w, line)
		}
	}
	slog.Info("command set is valid", "count", len(a.set.All()))
	return nil
}

func runConsole(ctx context.Context, configPath string, cfg *config.Config, mode string, args []string) error {
	fs := flag.NewFlagSet(mode, flag.ContinueOnError)
	userID := fs.String("user", cfg.Client.OwnerID, "user ID to run commands as")
	channelID := fs.String("channel", "", "channel ID, defaults to the first fixture channel")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(configPath, cfg)
	if err != nil {
		return err
	}

	if cfg.Guild.Fixture == "" {
		return errors.New("guild.fixture is required to run commands")
	}
	fixture, err := guild.LoadFixture(cfg.ExpandPath(configPath, cfg.Guild.Fixture))
	if err != nil {
		return err
	}
	cache, err := fixture.State()
	if err != nil {
		return err
	}
	state := guild.NewState(cache, fixture.Guild.ID)

	channel := *channelID
	if channel == "" {
		channel = fixture.DefaultChannel()
	}

	auditLogger, err := audit.NewSQLiteLogger(cfg.ExpandPath(configPath, cfg.Database.Path))
	if err != nil {
		return err
	}
	defer auditLogger.Close()

	c := console.New(a.set, a.client, state, auditLogger, console.Config{
		Prefix:    cfg.Client.Prefix,
		ChannelID: channel,
		Timeout:   cfg.Defaults.Timeout,
		MaxOutput: cfg.Defaults.MaxOutput,
	})

	if mode == "exec" {
		if fs.NArg() == 0 {
			return errors.New("exec: missing command line")
		}
		return execLine(ctx, c, *userID, strings.Join(fs.Args(), " "), os.Stdout)
	}

	slog.Info("reading commands from stdin", "user", *userID, "channel", channel)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := execLine(ctx, c, *userID, line, os.Stdout); err != nil {
			if pkgcmd.IsImplementationError(err) {
				return err
			}
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
		}
	}
	return scanner.Err()
}

func execLine(ctx context.Context, c *console.Console, userID, line string, w io.Writer) error {
	res, err := c.Exec(ctx, userID, line)
	if err != nil {
		return err
	}

	if res.Output != "" {
		fmt.Fprint(w, res.Output)
		if !strings.HasSuffix(res.Output, "\n") {
			fmt.Fprintln(w)
		}
	}
	if res.Truncated {
		fmt.Fprintln(w, "... (output truncated)")
	}
	if res.Err != nil {
		fmt.Fprintf(w, "%s: %v\n", res.Outcome, res.Err)
	}
	return nil
}
