package moderation

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/bwmarrin/discordgo"
)

// HasModPermissions verifica si un miembro puede usar los comandos de
// moderación: administrador, rol de admin/mod configurado, o los permisos
// ManageMessages/KickMembers.
func HasModPermissions(member *discordgo.Member, perms int64) bool {
	if perms&discordgo.PermissionAdministrator != 0 {
		return true
	}

	cfg := config.Get()
	for _, roleID := range member.Roles {
		if cfg.AdminRoleID != "" && roleID == cfg.AdminRoleID {
			return true
		}
		if cfg.ModRoleID != "" && roleID == cfg.ModRoleID {
			return true
		}
	}

	return perms&discordgo.PermissionManageMessages != 0 ||
		perms&discordgo.PermissionKickMembers != 0
}

// CanModerateTarget verifica si el moderador puede actuar sobre el objetivo.
// Devuelve false y un mensaje legible cuando no puede.
func CanModerateTarget(guild *discordgo.Guild, moderator, target *discordgo.Member, moderatorPerms, targetPerms int64) (bool, string) {
	if targetPerms&discordgo.PermissionAdministrator != 0 {
		return false, "No puedes moderar administradores"
	}

	if targetPerms&discordgo.PermissionManageMessages != 0 &&
		moderatorPerms&discordgo.PermissionAdministrator == 0 {
		return false, "No puedes moderar usuarios con permiso de gestionar mensajes"
	}

	if guild != nil && highestRolePosition(guild, target) >= highestRolePosition(guild, moderator) {
		return false, "No puedes moderar usuarios con rol igual o superior"
	}

	return true, ""
}

// highestRolePosition devuelve la posición del rol más alto de un miembro.
func highestRolePosition(guild *discordgo.Guild, member *discordgo.Member) int {
	highest := -1
	for _, roleID := range member.Roles {
		for _, role := range guild.Roles {
			if role.ID == roleID && role.Position > highest {
				highest = role.Position
			}
		}
	}
	return highest
}
