package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rashpile/pako-discord/internal/client"
	pkgcmd "github.com/rashpile/pako-discord/pkg/command"
)

func reply(t *testing.T, name string, typ pkgcmd.Type, aliases ...string) pkgcmd.Command {
	t.Helper()
	cmd, err := NewReplyCommand(client.New(client.Config{}), ReplyDef{
		Definition: pkgcmd.Definition{Name: name, Type: typ, Aliases: aliases},
		Reply:      name,
	})
	if err != nil {
		t.Fatalf("NewReplyCommand(%s) error = %v", name, err)
	}
	return cmd
}

func TestCheck(t *testing.T) {
	host := client.New(client.Config{})
	bare := pkgcmd.MustNew(host, pkgcmd.Definition{Name: "bare"})

	tests := []struct {
		name    string
		cmds    []pkgcmd.Command
		wantErr []string
	}{
		{"valid", []pkgcmd.Command{reply(t, "a", "", "x"), reply(t, "b", "")}, nil},
		{"duplicate name", []pkgcmd.Command{reply(t, "a", ""), reply(t, "a", "")}, []string{`"a" already used by a`}},
		{"alias collides with name", []pkgcmd.Command{reply(t, "a", ""), reply(t, "b", "", "a")}, []string{`b: "a" already used by a`}},
		{"bare base", []pkgcmd.Command{bare}, []string{"bare: command has no implementation"}},
		{"nil entry", []pkgcmd.Command{nil}, []string{"command #0 is nil"}},
		{
			"several problems",
			[]pkgcmd.Command{bare, reply(t, "a", ""), reply(t, "c", "", "a")},
			[]string{"no implementation", `c: "a" already used by a`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.cmds)
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Check() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Check() error = nil")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error = %v, want substring %q", err, want)
				}
			}
		})
	}

	if err := Check([]pkgcmd.Command{bare}); !errors.Is(err, ErrNoImplementation) {
		t.Errorf("errors.Is(%v, ErrNoImplementation) = false", err)
	}
}

func TestSetGetByNameAndAlias(t *testing.T) {
	s := NewSet()
	if err := s.Register(reply(t, "help", pkgcmd.TypeInfo, "h", "commands")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	for _, key := range []string{"help", "h", "commands"} {
		if cmd := s.Get(key); cmd == nil || cmd.Name() != "help" {
			t.Errorf("Get(%q) = %v", key, cmd)
		}
	}
	if s.Get("nope") != nil {
		t.Error("Get(nope) found a command")
	}
}

func TestSetReloadKeepsBuiltins(t *testing.T) {
	s := NewSet()
	if err := s.Register(reply(t, "help", pkgcmd.TypeInfo)); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload([]pkgcmd.Command{reply(t, "hug", pkgcmd.TypeFun)}); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload([]pkgcmd.Command{reply(t, "pat", pkgcmd.TypeFun)}); err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, cmd := range s.All() {
		names = append(names, cmd.Name())
	}
	if got := strings.Join(names, ","); got != "help,pat" {
		t.Errorf("All() = %s, want help,pat", got)
	}
	if s.Get("hug") != nil {
		t.Error("hug survived reload")
	}
}

func TestSetReloadRejectsCollisions(t *testing.T) {
	s := NewSet()
	if err := s.Register(reply(t, "help", pkgcmd.TypeInfo)); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload([]pkgcmd.Command{reply(t, "hug", pkgcmd.TypeFun)}); err != nil {
		t.Fatal(err)
	}

	if err := s.Reload([]pkgcmd.Command{reply(t, "pat", pkgcmd.TypeFun, "help")}); err == nil {
		t.Fatal("Reload() accepted an alias shadowing a builtin")
	}
	if s.Get("hug") == nil || s.Get("pat") != nil {
		t.Error("failed reload changed the set")
	}
}

func TestSetTypes(t *testing.T) {
	s := NewSet()
	err := s.Register(
		reply(t, "ping", pkgcmd.TypeFun),
		reply(t, "help", pkgcmd.TypeInfo),
		reply(t, "about", pkgcmd.TypeInfo),
		reply(t, "misc", ""),
	)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	groups := s.Types([]pkgcmd.Type{pkgcmd.TypeInfo, pkgcmd.TypeFun})
	var got []string
	for _, g := range groups {
		var names []string
		for _, c := range g.Commands {
			names = append(names, c.Name())
		}
		got = append(got, string(g.Type)+":"+strings.Join(names, ","))
	}
	if want := "INFO:about,help FUN:ping MISC:misc"; strings.Join(got, " ") != want {
		t.Errorf("Types() = %s, want %s", strings.Join(got, " "), want)
	}
}

type forgotRun struct{ *pkgcmd.Base }

type forgotRunByValue struct{ pkgcmd.Base }

type wrapped struct{ pkgcmd.Command }

type valueRun struct{ *pkgcmd.Base }

func (valueRun) Run(context.Context, *pkgcmd.Invocation, []string) error { return nil }

type pointerRun struct{ *pkgcmd.Base }

func (*pointerRun) Run(context.Context, *pkgcmd.Invocation, []string) error { return nil }

func TestCheckDetectsInheritedRun(t *testing.T) {
	host := client.New(client.Config{})
	base := func(name string) *pkgcmd.Base {
		return pkgcmd.MustNew(host, pkgcmd.Definition{Name: name})
	}

	tests := []struct {
		name string
		cmd  pkgcmd.Command
		want bool
	}{
		{"bare base", base("bare"), true},
		{"embedded pointer", forgotRun{base("a")}, true},
		{"pointer to embedding struct", &forgotRun{base("b")}, true},
		{"embedded value", &forgotRunByValue{Base: *base("c")}, true},
		{"wrapped base", wrapped{base("d")}, true},
		{"wrapped forgotten run", wrapped{&forgotRun{base("e")}}, true},
		{"value receiver override", valueRun{base("f")}, false},
		{"pointer to value receiver override", &valueRun{base("g")}, false},
		{"pointer receiver override", &pointerRun{base("h")}, false},
		{"wrapped override", wrapped{valueRun{base("i")}}, false},
		{"reply command", reply(t, "j", ""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inheritsBaseRun(tt.cmd); got != tt.want {
				t.Errorf("inheritsBaseRun() = %v, want %v", got, tt.want)
			}

			err := Check([]pkgcmd.Command{tt.cmd})
			if got := errors.Is(err, ErrNoImplementation); got != tt.want {
				t.Errorf("Check() = %v, want ErrNoImplementation %v", err, tt.want)
			}
		})
	}
}

func TestSetRejectsForgottenRun(t *testing.T) {
	s := NewSet()
	cmd := forgotRun{pkgcmd.MustNew(client.New(client.Config{}), pkgcmd.Definition{Name: "todo"})}

	if err := s.Register(cmd); !errors.Is(err, ErrNoImplementation) {
		t.Fatalf("Register() error = %v, want ErrNoImplementation", err)
	}
	if s.Get("todo") != nil {
		t.Error("rejected command was registered")
	}
}

func TestSetIgnoresCase(t *testing.T) {
	s := NewSet()
	if err := s.Register(reply(t, "Hug", pkgcmd.TypeFun, "Cuddle")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	for _, key := range []string{"Hug", "hug", "HUG", "cuddle", "CUDDLE"} {
		if cmd := s.Get(key); cmd == nil || cmd.Name() != "Hug" {
			t.Errorf("Get(%q) = %v, want Hug", key, cmd)
		}
	}

	err := s.Reload([]pkgcmd.Command{reply(t, "hug", pkgcmd.TypeFun)})
	if err == nil || !strings.Contains(err.Error(), `"hug" already used by Hug`) {
		t.Errorf("Reload() error = %v, want case-insensitive collision", err)
	}
}
