// Package command provides the local command set and YAML-defined commands.
package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	pkgcmd "github.com/rashpile/pako-discord/pkg/command"
)

// ErrNoImplementation marks a command whose Run is the one inherited from
// *command.Base.
var ErrNoImplementation = errors.New("command has no implementation")

// Check reports every problem that must stop startup: nil entries, commands
// without a Run override, and names or aliases claimed twice. Names and
// aliases are compared case-insensitively.
func Check(cmds []pkgcmd.Command) error {
	var errs []error
	owner := make(map[string]string)

	for i, cmd := range cmds {
		if cmd == nil {
			errs = append(errs, fmt.Errorf("command #%d is nil", i))
			continue
		}
		if inheritsBaseRun(cmd) {
			errs = append(errs, fmt.Errorf("%s: %w", cmd.Name(), ErrNoImplementation))
		}

		keys := append([]string{cmd.Name()}, cmd.Aliases()...)
		for _, key := range keys {
			key = strings.ToLower(key)
			if prev, taken := owner[key]; taken {
				errs = append(errs, fmt.Errorf("%s: %q already used by %s", cmd.Name(), key, prev))
				continue
			}
			owner[key] = cmd.Name()
		}
	}

	return errors.Join(errs...)
}

// Set holds the commands known to a process, indexed by name and alias.
// Built-in commands survive Reload; loaded commands are replaced.
type Set struct {
	mu      sync.RWMutex
	builtin []pkgcmd.Command
	loaded  []pkgcmd.Command
	index   map[string]pkgcmd.Command
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{index: make(map[string]pkgcmd.Command)}
}

// Register adds built-in commands.
func (s *Set) Register(cmds ...pkgcmd.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	builtin := append(append([]pkgcmd.Command(nil), s.builtin...), cmds...)
	return s.rebuild(builtin, s.loaded)
}

// Reload atomically replaces the loaded commands. On error the set is unchanged.
func (s *Set) Reload(cmds []pkgcmd.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rebuild(s.builtin, append([]pkgcmd.Command(nil), cmds...))
}

// rebuild validates and swaps in a new index. Caller holds the lock.
func (s *Set) rebuild(builtin, loaded []pkgcmd.Command) error {
	all := append(append([]pkgcmd.Command(nil), builtin...), loaded...)
	if err := Check(all); err != nil {
		return err
	}

	index := make(map[string]pkgcmd.Command, len(all))
	for _, cmd := range all {
		index[strings.ToLower(cmd.Name())] = cmd
		for _, alias := range cmd.Aliases() {
			index[strings.ToLower(alias)] = cmd
		}
	}

	s.builtin = builtin
	s.loaded = loaded
	s.index = index
	return nil
}

// Get retrieves a command by name or alias, ignoring case. Returns nil if
// not found.
func (s *Set) Get(name string) pkgcmd.Command {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index[strings.ToLower(name)]
}

// All returns every command sorted by name.
func (s *Set) All() []pkgcmd.Command {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cmds := make([]pkgcmd.Command, 0, len(s.builtin)+len(s.loaded))
	cmds = append(cmds, s.builtin...)
	cmds = append(cmds, s.loaded...)
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}

// TypeWithCommands holds a command type and its commands.
type TypeWithCommands struct {
	Type     pkgcmd.Type
	Commands []pkgcmd.Command
}

// Types returns commands grouped by type. Groups follow the order of order;
// types not listed there come last, alphabetically.
func (s *Set) Types(order []pkgcmd.Type) []TypeWithCommands {
	groups := make(map[pkgcmd.Type][]pkgcmd.Command)
	for _, cmd := range s.All() {
		groups[cmd.Type()] = append(groups[cmd.Type()], cmd)
	}

	rank := make(map[pkgcmd.Type]int, len(order))
	for i, t := range order {
		rank[t] = i
	}

	result := make([]TypeWithCommands, 0, len(groups))
	for t, cmds := range groups {
		result = append(result, TypeWithCommands{Type: t, Commands: cmds})
	}
	sort.Slice(result, func(i, j int) bool {
		ri, iok := rank[result[i].Type]
		rj, jok := rank[result[j].Type]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return result[i].Type < result[j].Type
		}
	})

	return result
}
