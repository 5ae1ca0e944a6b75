package command

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-cmp/cmp"
)

func TestPermissionBit(t *testing.T) {
	tests := []struct {
		perm    Permission
		wantBit int64
		wantOK  bool
	}{
		{PermissionSendMessages, discordgo.PermissionSendMessages, true},
		{PermissionEmbedLinks, discordgo.PermissionEmbedLinks, true},
		{PermissionAdministrator, discordgo.PermissionAdministrator, true},
		{"VIEW_AUDIT_LOG", discordgo.PermissionViewAuditLogs, true},
		{"send_messages", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.perm), func(t *testing.T) {
			bit, ok := tt.perm.Bit()
			if bit != tt.wantBit || ok != tt.wantOK {
				t.Errorf("Bit() = (%d, %v), want (%d, %v)", bit, ok, tt.wantBit, tt.wantOK)
			}
			if ok != tt.perm.Known() {
				t.Errorf("Known() = %v, want %v", tt.perm.Known(), ok)
			}
		})
	}
}

func TestMaskAndMissing(t *testing.T) {
	required := []Permission{PermissionSendMessages, PermissionEmbedLinks, PermissionManageRoles}
	granted := int64(discordgo.PermissionSendMessages | discordgo.PermissionViewChannel)

	if got, want := Mask(required), int64(discordgo.PermissionSendMessages|discordgo.PermissionEmbedLinks|discordgo.PermissionManageRoles); got != want {
		t.Errorf("Mask() = %d, want %d", got, want)
	}

	want := []Permission{PermissionEmbedLinks, PermissionManageRoles}
	if diff := cmp.Diff(want, Missing(required, granted)); diff != "" {
		t.Errorf("Missing() mismatch (-want +got):\n%s", diff)
	}
	if got := Missing(required, Mask(required)); len(got) != 0 {
		t.Errorf("Missing(all granted) = %v", got)
	}
	if got := Missing([]Permission{"BOGUS"}, -1); len(got) != 1 {
		t.Errorf("Missing(unknown) = %v, want [BOGUS]", got)
	}
}

func TestPermissionTitle(t *testing.T) {
	if got := PermissionManageMessages.Title(); got != "Manage Messages" {
		t.Errorf("Title() = %q", got)
	}
	if got := Permission("BOGUS").Title(); got != "BOGUS" {
		t.Errorf("Title() = %q", got)
	}
}

func TestAllPermissionsSorted(t *testing.T) {
	perms := AllPermissions()
	for i := 1; i < len(perms); i++ {
		if perms[i-1] >= perms[i] {
			t.Fatalf("AllPermissions() not sorted at %d: %q >= %q", i, perms[i-1], perms[i])
		}
	}
	for _, p := range DefaultClientPermissions() {
		if !p.Known() {
			t.Errorf("default permission %q is not in the vocabulary", p)
		}
	}
}

func TestFromMask(t *testing.T) {
	mask := int64(discordgo.PermissionSendMessages | discordgo.PermissionKickMembers)
	want := []Permission{PermissionKickMembers, PermissionSendMessages}
	if diff := cmp.Diff(want, FromMask(mask)); diff != "" {
		t.Errorf("FromMask() mismatch (-want +got):\n%s", diff)
	}
	if got := FromMask(0); len(got) != 0 {
		t.Errorf("FromMask(0) = %v", got)
	}
}
