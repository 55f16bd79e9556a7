package moderation

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func testGuild() *discordgo.Guild {
	return &discordgo.Guild{
		Roles: []*discordgo.Role{
			{ID: "role-low", Position: 1},
			{ID: "role-mid", Position: 5},
			{ID: "role-high", Position: 10},
		},
	}
}

func TestCanModerateTargetBlocksAdmins(t *testing.T) {
	guild := testGuild()
	moderator := &discordgo.Member{Roles: []string{"role-high"}}
	target := &discordgo.Member{Roles: []string{"role-low"}}

	ok, reason := CanModerateTarget(guild, moderator, target, discordgo.PermissionAdministrator, discordgo.PermissionAdministrator)
	if ok {
		t.Error("CanModerateTarget = true for admin target, want false")
	}
	if reason == "" {
		t.Error("reason is empty, want a message")
	}
}

func TestCanModerateTargetRoleHierarchy(t *testing.T) {
	guild := testGuild()

	tests := []struct {
		name     string
		modRole  string
		tgtRole  string
		expectOK bool
	}{
		{"higher moderator", "role-high", "role-low", true},
		{"equal roles", "role-mid", "role-mid", false},
		{"lower moderator", "role-low", "role-high", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moderator := &discordgo.Member{Roles: []string{tt.modRole}}
			target := &discordgo.Member{Roles: []string{tt.tgtRole}}

			ok, _ := CanModerateTarget(guild, moderator, target, discordgo.PermissionKickMembers, 0)
			if ok != tt.expectOK {
				t.Errorf("CanModerateTarget = %v, want %v", ok, tt.expectOK)
			}
		})
	}
}

func TestCanModerateTargetModeratorTarget(t *testing.T) {
	guild := testGuild()
	moderator := &discordgo.Member{Roles: []string{"role-high"}}
	target := &discordgo.Member{Roles: []string{"role-low"}}

	// A target with ManageMessages is protected from non-admin moderators.
	ok, _ := CanModerateTarget(guild, moderator, target, discordgo.PermissionKickMembers, discordgo.PermissionManageMessages)
	if ok {
		t.Error("CanModerateTarget = true for moderator target, want false")
	}

	// An admin moderator can act on a ManageMessages target.
	ok, _ = CanModerateTarget(guild, moderator, target, discordgo.PermissionAdministrator, discordgo.PermissionManageMessages)
	if !ok {
		t.Error("CanModerateTarget = false for admin moderator, want true")
	}
}

func TestHighestRolePosition(t *testing.T) {
	guild := testGuild()

	member := &discordgo.Member{Roles: []string{"role-low", "role-high"}}
	if got := highestRolePosition(guild, member); got != 10 {
		t.Errorf("highestRolePosition = %d, want 10", got)
	}

	noRoles := &discordgo.Member{}
	if got := highestRolePosition(guild, noRoles); got != -1 {
		t.Errorf("highestRolePosition = %d, want -1", got)
	}
}
