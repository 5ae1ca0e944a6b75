package guild

import (
	"fmt"
	"os"

	"github.com/bwmarrin/discordgo"
	"gopkg.in/yaml.v3"

	pkgcmd "github.com/rashpile/pako-discord/pkg/command"
)

// Fixture describes a guild snapshot for offline runs and tests.
type Fixture struct {
	Guild    GuildDef     `yaml:"guild"`
	BotID    string       `yaml:"bot_id"`
	Channels []ChannelDef `yaml:"channels"`
	Roles    []RoleDef    `yaml:"roles"`
	Members  []MemberDef  `yaml:"members"`
}

// GuildDef is the guild itself.
type GuildDef struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	OwnerID string `yaml:"owner_id"`
}

// ChannelDef is a text channel. The first one is the default channel.
type ChannelDef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// RoleDef is a guild role. A role whose ID equals the guild ID is @everyone.
type RoleDef struct {
	ID          string              `yaml:"id"`
	Name        string              `yaml:"name"`
	Color       int                 `yaml:"color"`
	Position    int                 `yaml:"position"`
	Mentionable bool                `yaml:"mentionable"`
	Permissions []pkgcmd.Permission `yaml:"permissions"`
}

// MemberDef is a guild member.
type MemberDef struct {
	ID       string   `yaml:"id"`
	Username string   `yaml:"username"`
	Nick     string   `yaml:"nick"`
	Bot      bool     `yaml:"bot"`
	Roles    []string `yaml:"roles"`
}

// LoadFixture reads a fixture from a YAML file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes and checks a YAML fixture.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixture) validate() error {
	if f.Guild.ID == "" {
		return fmt.Errorf("guild.id is required")
	}
	if len(f.Channels) == 0 {
		return fmt.Errorf("at least one channel is required")
	}

	roles := make(map[string]struct{}, len(f.Roles))
	for _, r := range f.Roles {
		if r.ID == "" {
			return fmt.Errorf("role %q: id is required", r.Name)
		}
		for _, p := range r.Permissions {
			if !p.Known() {
				return fmt.Errorf("role %q: unknown permission %q", r.Name, p)
			}
		}
		roles[r.ID] = struct{}{}
	}

	for _, m := range f.Members {
		if m.ID == "" {
			return fmt.Errorf("member %q: id is required", m.Username)
		}
		for _, id := range m.Roles {
			if _, ok := roles[id]; !ok {
				return fmt.Errorf("member %q: unknown role %q", m.Username, id)
			}
		}
	}
	return nil
}

// DefaultChannel returns the ID of the first channel.
func (f *Fixture) DefaultChannel() string {
	return f.Channels[0].ID
}

// State builds a fresh discordgo state cache holding the fixture.
func (f *Fixture) State() (*discordgo.State, error) {
	s := discordgo.NewState()

	g := &discordgo.Guild{
		ID:      f.Guild.ID,
		Name:    f.Guild.Name,
		OwnerID: f.Guild.OwnerID,
	}
	if err := s.GuildAdd(g); err != nil {
		return nil, fmt.Errorf("add guild: %w", err)
	}

	for _, c := range f.Channels {
		ch := &discordgo.Channel{
			ID:      c.ID,
			GuildID: f.Guild.ID,
			Name:    c.Name,
			Type:    discordgo.ChannelTypeGuildText,
		}
		if err := s.ChannelAdd(ch); err != nil {
			return nil, fmt.Errorf("add channel %s: %w", c.ID, err)
		}
	}

	for _, r := range f.Roles {
		role := &discordgo.Role{
			ID:          r.ID,
			Name:        r.Name,
			Color:       r.Color,
			Position:    r.Position,
			Mentionable: r.Mentionable,
			Permissions: pkgcmd.Mask(r.Permissions),
		}
		if err := s.RoleAdd(f.Guild.ID, role); err != nil {
			return nil, fmt.Errorf("add role %s: %w", r.ID, err)
		}
	}

	for _, m := range f.Members {
		member := &discordgo.Member{
			GuildID: f.Guild.ID,
			Nick:    m.Nick,
			Roles:   append([]string(nil), m.Roles...),
			User: &discordgo.User{
				ID:       m.ID,
				Username: m.Username,
				Bot:      m.Bot,
			},
		}
		if err := s.MemberAdd(member); err != nil {
			return nil, fmt.Errorf("add member %s: %w", m.ID, err)
		}
		if m.ID == f.BotID {
			s.User = member.User
		}
	}

	return s, nil
}
