// Package guild exposes cached Discord guild data to commands.
package guild

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// State reads one guild out of a discordgo state cache. It implements
// command.Directory and never writes to the cache.
type State struct {
	cache   *discordgo.State
	guildID string
}

// NewState scopes cache to guildID.
func NewState(cache *discordgo.State, guildID string) *State {
	return &State{cache: cache, guildID: guildID}
}

// GuildID returns the guild this view is scoped to.
func (s *State) GuildID() string {
	return s.guildID
}

// Member returns the cached member with the given user ID.
func (s *State) Member(id string) (*discordgo.Member, bool) {
	if s == nil || s.cache == nil {
		return nil, false
	}
	m, err := s.cache.Member(s.guildID, id)
	if err != nil {
		return nil, false
	}
	return m, true
}

// Role returns the cached role with the given ID.
func (s *State) Role(id string) (*discordgo.Role, bool) {
	if s == nil || s.cache == nil {
		return nil, false
	}
	r, err := s.cache.Role(s.guildID, id)
	if err != nil {
		return nil, false
	}
	return r, true
}

// BotID returns the user ID of the session the cache belongs to.
func (s *State) BotID() string {
	if s == nil || s.cache == nil || s.cache.User == nil {
		return ""
	}
	return s.cache.User.ID
}

// Permissions computes the effective permissions of userID in channelID,
// including role grants, channel overwrites and the guild owner bypass.
func (s *State) Permissions(userID, channelID string) (int64, error) {
	if s == nil || s.cache == nil {
		return 0, errors.New("no state cache")
	}
	perms, err := s.cache.UserChannelPermissions(userID, channelID)
	if err != nil {
		return 0, fmt.Errorf("get permissions of %s in %s: %w", userID, channelID, err)
	}
	return perms, nil
}
