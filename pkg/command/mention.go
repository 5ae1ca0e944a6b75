package command

import (
	"regexp"

	"github.com/bwmarrin/discordgo"
)

// Directory looks up cached guild members and roles by ID.
type Directory interface {
	Member(id string) (*discordgo.Member, bool)
	Role(id string) (*discordgo.Role, bool)
}

var (
	memberMention = regexp.MustCompile(`^<@!?(\d+)>$`)
	roleMention   = regexp.MustCompile(`^<@&(\d+)>$`)
)

// MemberID extracts the user ID from a <@id> or <@!id> token.
func MemberID(token string) (string, bool) {
	return mentionID(memberMention, token)
}

// RoleID extracts the role ID from a <@&id> token.
func RoleID(token string) (string, bool) {
	return mentionID(roleMention, token)
}

func mentionID(pattern *regexp.Regexp, token string) (string, bool) {
	if token == "" {
		return "", false
	}
	m := pattern.FindStringSubmatch(token)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ResolveMember returns the guild member a mention token refers to.
// Empty or malformed tokens, and invocations without a directory, yield
// no match; so does an ID missing from the directory.
func ResolveMember(inv *Invocation, token string) (*discordgo.Member, bool) {
	id, ok := MemberID(token)
	if !ok || inv == nil || inv.Guild == nil {
		return nil, false
	}
	return inv.Guild.Member(id)
}

// ResolveRole returns the guild role a mention token refers to.
func ResolveRole(inv *Invocation, token string) (*discordgo.Role, bool) {
	id, ok := RoleID(token)
	if !ok || inv == nil || inv.Guild == nil {
		return nil, false
	}
	return inv.Guild.Role(id)
}
