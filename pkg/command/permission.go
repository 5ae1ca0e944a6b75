package command

import (
	"sort"

	"github.com/bwmarrin/discordgo"
)

// Permission is a Discord capability name such as "SEND_MESSAGES".
type Permission string

// Commonly declared permissions.
const (
	PermissionAdministrator  Permission = "ADMINISTRATOR"
	PermissionSendMessages   Permission = "SEND_MESSAGES"
	PermissionEmbedLinks     Permission = "EMBED_LINKS"
	PermissionManageMessages Permission = "MANAGE_MESSAGES"
	PermissionManageRoles    Permission = "MANAGE_ROLES"
	PermissionKickMembers    Permission = "KICK_MEMBERS"
	PermissionBanMembers     Permission = "BAN_MEMBERS"
)

type permissionInfo struct {
	bit   int64
	title string
}

// vocabulary is the platform permission table. Names follow the gateway
// flag names, bits come from discordgo.
var vocabulary = map[Permission]permissionInfo{
	"CREATE_INSTANT_INVITE": {discordgo.PermissionCreateInstantInvite, "Create Instant Invite"},
	"KICK_MEMBERS":          {discordgo.PermissionKickMembers, "Kick Members"},
	"BAN_MEMBERS":           {discordgo.PermissionBanMembers, "Ban Members"},
	"ADMINISTRATOR":         {discordgo.PermissionAdministrator, "Administrator"},
	"MANAGE_CHANNELS":       {discordgo.PermissionManageChannels, "Manage Channels"},
	"MANAGE_GUILD":          {discordgo.PermissionManageServer, "Manage Server"},
	"ADD_REACTIONS":         {discordgo.PermissionAddReactions, "Add Reactions"},
	"VIEW_AUDIT_LOG":        {discordgo.PermissionViewAuditLogs, "View Audit Log"},
	"PRIORITY_SPEAKER":      {discordgo.PermissionVoicePrioritySpeaker, "Priority Speaker"},
	"STREAM":                {discordgo.PermissionVoiceStreamVideo, "Video"},
	"VIEW_CHANNEL":          {discordgo.PermissionViewChannel, "View Channel"},
	"SEND_MESSAGES":         {discordgo.PermissionSendMessages, "Send Messages"},
	"SEND_TTS_MESSAGES":     {discordgo.PermissionSendTTSMessages, "Send TTS Messages"},
	"MANAGE_MESSAGES":       {discordgo.PermissionManageMessages, "Manage Messages"},
	"EMBED_LINKS":           {discordgo.PermissionEmbedLinks, "Embed Links"},
	"ATTACH_FILES":          {discordgo.PermissionAttachFiles, "Attach Files"},
	"READ_MESSAGE_HISTORY":  {discordgo.PermissionReadMessageHistory, "Read Message History"},
	"MENTION_EVERYONE":      {discordgo.PermissionMentionEveryone, "Mention Everyone"},
	"USE_EXTERNAL_EMOJIS":   {discordgo.PermissionUseExternalEmojis, "Use External Emojis"},
	"VIEW_GUILD_INSIGHTS":   {discordgo.PermissionViewGuildInsights, "View Server Insights"},
	"CONNECT":               {discordgo.PermissionVoiceConnect, "Connect"},
	"SPEAK":                 {discordgo.PermissionVoiceSpeak, "Speak"},
	"MUTE_MEMBERS":          {discordgo.PermissionVoiceMuteMembers, "Mute Members"},
	"DEAFEN_MEMBERS":        {discordgo.PermissionVoiceDeafenMembers, "Deafen Members"},
	"MOVE_MEMBERS":          {discordgo.PermissionVoiceMoveMembers, "Move Members"},
	"USE_VAD":               {discordgo.PermissionVoiceUseVAD, "Use Voice Activity"},
	"CHANGE_NICKNAME":       {discordgo.PermissionChangeNickname, "Change Nickname"},
	"MANAGE_NICKNAMES":      {discordgo.PermissionManageNicknames, "Manage Nicknames"},
	"MANAGE_ROLES":          {discordgo.PermissionManageRoles, "Manage Roles"},
	"MANAGE_WEBHOOKS":       {discordgo.PermissionManageWebhooks, "Manage Webhooks"},
	"MODERATE_MEMBERS":      {discordgo.PermissionModerateMembers, "Timeout Members"},
}

// DefaultClientPermissions is what a command needs when it declares nothing.
func DefaultClientPermissions() []Permission {
	return []Permission{PermissionSendMessages, PermissionEmbedLinks}
}

// Known reports whether p is part of the platform vocabulary.
func (p Permission) Known() bool {
	_, ok := vocabulary[p]
	return ok
}

// Bit returns the discordgo permission bit for p.
func (p Permission) Bit() (int64, bool) {
	info, ok := vocabulary[p]
	return info.bit, ok
}

// Title returns a human label, or the raw name for unknown permissions.
func (p Permission) Title() string {
	if info, ok := vocabulary[p]; ok {
		return info.title
	}
	return string(p)
}

// Mask ORs the bits of all known permissions in perms.
func Mask(perms []Permission) int64 {
	var mask int64
	for _, p := range perms {
		if bit, ok := p.Bit(); ok {
			mask |= bit
		}
	}
	return mask
}

// Missing returns the permissions in required whose bit is not set in granted.
func Missing(required []Permission, granted int64) []Permission {
	var missing []Permission
	for _, p := range required {
		bit, ok := p.Bit()
		if !ok || granted&bit != bit {
			missing = append(missing, p)
		}
	}
	return missing
}

// FromMask returns the known permissions whose bits are set in mask, sorted by name.
func FromMask(mask int64) []Permission {
	var perms []Permission
	for _, p := range AllPermissions() {
		if bit := vocabulary[p].bit; mask&bit == bit {
			perms = append(perms, p)
		}
	}
	return perms
}

// AllPermissions returns the whole vocabulary sorted by name.
func AllPermissions() []Permission {
	perms := make([]Permission, 0, len(vocabulary))
	for p := range vocabulary {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool {
		return perms[i] < perms[j]
	})
	return perms
}
