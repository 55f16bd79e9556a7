package moderation

import (
	"fmt"
	"strconv"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// Enforcer implementa store.UnmuteAction sobre la sesión de Discord: resuelve
// membresía y estado de silencio, y revoca el rol Muted cuando un mute expira.
type Enforcer struct {
	session *discordgo.Session
	guildID string
}

// NewEnforcer creates an Enforcer for the configured guild.
func NewEnforcer(session *discordgo.Session, guildID string) *Enforcer {
	return &Enforcer{session: session, guildID: guildID}
}

// gid resuelve el servidor objetivo: el configurado, o el primero del estado
// de la sesión si no hay uno configurado.
func (e *Enforcer) gid() string {
	if e.guildID != "" {
		return e.guildID
	}
	if e.session.State != nil && len(e.session.State.Guilds) > 0 {
		return e.session.State.Guilds[0].ID
	}
	return ""
}

func (e *Enforcer) member(userID int64) *discordgo.Member {
	id := strconv.FormatInt(userID, 10)
	member, err := e.session.State.Member(e.gid(), id)
	if err == nil {
		return member
	}
	member, err = e.session.GuildMember(e.gid(), id)
	if err != nil {
		return nil
	}
	return member
}

// IsMember reporta si el usuario sigue en el servidor.
func (e *Enforcer) IsMember(userID int64) bool {
	return e.member(userID) != nil
}

// IsMuted reporta si el usuario todavía tiene el rol de silencio.
func (e *Enforcer) IsMuted(userID int64) bool {
	member := e.member(userID)
	if member == nil {
		return false
	}
	guild, err := e.session.State.Guild(e.gid())
	if err != nil {
		guild, err = e.session.Guild(e.gid())
		if err != nil {
			return false
		}
	}
	return HasMutedRole(guild, member)
}

// Unmute quita el rol de silencio del usuario.
func (e *Enforcer) Unmute(userID int64) error {
	role, err := GetOrCreateMutedRole(e.session, e.gid())
	if err != nil {
		return err
	}

	id := strconv.FormatInt(userID, 10)
	if err := e.session.GuildMemberRoleRemove(e.gid(), id, role.ID); err != nil {
		return fmt.Errorf("quitando rol de silencio: %w", err)
	}

	logger.Info(fmt.Sprintf("Rol de silencio removido de %s", id), "Moderation")
	return nil
}
