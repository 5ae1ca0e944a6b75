package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/bwmarrin/discordgo"
	"gopkg.in/yaml.v3"

	pkgcmd "github.com/rashpile/pako-discord/pkg/command"
)

// ReplyDef is a command definition read from YAML. Reply is a text/template
// rendered with ReplyData.
type ReplyDef struct {
	pkgcmd.Definition `yaml:",inline"`

	Reply   string `yaml:"reply"`
	MinArgs int    `yaml:"min_args"`
}

// ReplyData is what a reply template sees.
type ReplyData struct {
	Args    []string
	Author  *discordgo.User
	GuildID string
	Target  *discordgo.Member // member mentioned by the first argument
	Role    *discordgo.Role   // first argument that is a role mention
}

// ReplyCommand answers with a rendered template.
type ReplyCommand struct {
	*pkgcmd.Base

	tmpl    *template.Template
	minArgs int
	source  string
}

var replyFuncs = template.FuncMap{
	"join":  strings.Join,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

// NewReplyCommand validates def against host and compiles its template.
func NewReplyCommand(host pkgcmd.Host, def ReplyDef) (*ReplyCommand, error) {
	base, err := pkgcmd.New(host, def.Definition)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(def.Reply) == "" {
		return nil, fmt.Errorf("%s: reply is required", def.Name)
	}
	if def.MinArgs < 0 {
		return nil, fmt.Errorf("%s: min_args must not be negative", def.Name)
	}

	tmpl, err := template.New(def.Name).Funcs(replyFuncs).Option("missingkey=error").Parse(def.Reply)
	if err != nil {
		return nil, fmt.Errorf("%s: parse reply: %w", def.Name, err)
	}

	return &ReplyCommand{
		Base:    base,
		tmpl:    tmpl,
		minArgs: def.MinArgs,
	}, nil
}

// Source returns the file the command was loaded from, if any.
func (r *ReplyCommand) Source() string {
	return r.source
}

// Run renders the reply and writes it to the invocation output.
func (r *ReplyCommand) Run(ctx context.Context, inv *pkgcmd.Invocation, args []string) error {
	if len(args) < r.minArgs {
		return r.InvalidArgument("expected at least %d argument(s), usage: %s", r.minArgs, r.Usage())
	}
	if err := ctx.Err(); err != nil {
		return r.Failure(err)
	}

	data := ReplyData{Args: args}
	if inv != nil {
		data.Author = inv.Author
		data.GuildID = inv.GuildID
	}
	if len(args) > 0 {
		if member, ok := pkgcmd.ResolveMember(inv, args[0]); ok {
			data.Target = member
		}
	}
	for _, arg := range args {
		if role, ok := pkgcmd.ResolveRole(inv, arg); ok {
			data.Role = role
			break
		}
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return r.Failure(fmt.Errorf("render reply: %w", err))
	}

	if inv == nil || inv.Output == nil {
		return r.Failure(fmt.Errorf("no output"))
	}
	if _, err := buf.WriteTo(inv.Output); err != nil {
		return r.Failure(fmt.Errorf("write reply: %w", err))
	}
	return nil
}

// Loader loads YAML reply commands from a directory.
type Loader struct {
	dir  string
	host pkgcmd.Host
}

// NewLoader creates a YAML command loader.
func NewLoader(dir string, host pkgcmd.Host) *Loader {
	return &Loader{
		dir:  dir,
		host: host,
	}
}

// Load reads all .yaml files from the configured directory and subdirectories.
// The first invalid file aborts the load.
func (l *Loader) Load() ([]pkgcmd.Command, error) {
	if _, err := os.Stat(l.dir); os.IsNotExist(err) {
		slog.Debug("commands directory not found", "dir", l.dir)
		return nil, nil // No commands directory is OK
	}

	var commands []pkgcmd.Command
	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(d.Name())
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		cmd, err := l.loadFile(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}

		commands = append(commands, cmd)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk commands directory: %w", err)
	}

	return commands, nil
}

// loadFile parses a single YAML command file.
func (l *Loader) loadFile(path string) (*ReplyCommand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var def ReplyDef
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	cmd, err := NewReplyCommand(l.host, def)
	if err != nil {
		return nil, err
	}
	cmd.source = path

	return cmd, nil
}
