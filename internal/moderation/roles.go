package moderation

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// MutedRoleName es el nombre del rol que aplica el silencio.
const MutedRoleName = "Muted"

// GetOrCreateMutedRole busca el rol de silencio del servidor, creándolo y
// denegando enviar mensajes y hablar en todos los canales si no existe.
// Devuelve error cuando el bot no tiene permisos para crear roles
// (discordgo.ErrCodeMissingPermissions en el ErrUnexpectedRestError).
func GetOrCreateMutedRole(s *discordgo.Session, guildID string) (*discordgo.Role, error) {
	guild, err := s.State.Guild(guildID)
	if err != nil {
		guild, err = s.Guild(guildID)
		if err != nil {
			return nil, fmt.Errorf("obteniendo servidor %s: %w", guildID, err)
		}
	}

	for _, role := range guild.Roles {
		if role.Name == MutedRoleName {
			return role, nil
		}
	}

	grey := 0x5A5A5A
	role, err := s.GuildRoleCreate(guildID, &discordgo.RoleParams{
		Name:  MutedRoleName,
		Color: &grey,
	})
	if err != nil {
		return nil, fmt.Errorf("creando rol de silencio: %w", err)
	}

	// Denegar hablar y escribir en los canales existentes. Un fallo en un
	// canal individual no aborta el resto.
	channels, err := s.GuildChannels(guildID)
	if err == nil {
		deny := int64(discordgo.PermissionSendMessages | discordgo.PermissionVoiceSpeak)
		for _, channel := range channels {
			if channel.Type != discordgo.ChannelTypeGuildText && channel.Type != discordgo.ChannelTypeGuildVoice {
				continue
			}
			if err := s.ChannelPermissionSet(channel.ID, role.ID, discordgo.PermissionOverwriteTypeRole, 0, deny); err != nil {
				logger.Warn(fmt.Sprintf("No se pudo configurar el rol Muted en canal %s: %v", channel.ID, err), "Moderation")
			}
		}
	}

	logger.Info(fmt.Sprintf("Rol de silencio creado en servidor %s", guildID), "Moderation")
	return role, nil
}

// HasMutedRole reporta si el miembro tiene el rol de silencio.
func HasMutedRole(guild *discordgo.Guild, member *discordgo.Member) bool {
	var mutedRoleID string
	for _, role := range guild.Roles {
		if role.Name == MutedRoleName {
			mutedRoleID = role.ID
			break
		}
	}
	if mutedRoleID == "" {
		return false
	}
	for _, roleID := range member.Roles {
		if roleID == mutedRoleID {
			return true
		}
	}
	return false
}

// IsForbidden reporta si el error de la API de Discord es una denegación de
// permisos, para distinguir "no autorizado" de otros fallos externos.
func IsForbidden(err error) bool {
	if restErr, ok := err.(*discordgo.RESTError); ok {
		if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeMissingPermissions {
			return true
		}
		if restErr.Response != nil && restErr.Response.StatusCode == 403 {
			return true
		}
	}
	return false
}
