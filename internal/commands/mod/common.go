package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// requireMod verifica los permisos de moderación del ejecutor. Si no los
// tiene responde efímero y devuelve false.
func requireMod(ctx *discord.CommandContext) bool {
	member := ctx.Member()
	if member == nil {
		ctx.ReplyEphemeral("❌ Este comando solo puede usarse en un servidor.")
		return false
	}

	perms, err := ctx.Session.UserChannelPermissions(ctx.User().ID, ctx.Interaction.ChannelID)
	if err != nil {
		perms = 0
	}

	if !moderation.HasModPermissions(member, perms) {
		ctx.ReplyEphemeral("❌ No tienes permisos para usar este comando.")
		return false
	}
	return true
}

// targetMember resuelve el miembro del servidor para un usuario objetivo.
func targetMember(ctx *discord.CommandContext, user *discordgo.User) *discordgo.Member {
	member, err := ctx.Session.State.Member(ctx.Interaction.GuildID, user.ID)
	if err == nil {
		return member
	}
	member, err = ctx.Session.GuildMember(ctx.Interaction.GuildID, user.ID)
	if err != nil {
		return nil
	}
	return member
}

// canModerate verifica la jerarquía entre ejecutor y objetivo. Si el objetivo
// no puede moderarse responde efímero y devuelve false.
func canModerate(ctx *discord.CommandContext, target *discordgo.Member) bool {
	moderatorPerms, err := ctx.Session.UserChannelPermissions(ctx.User().ID, ctx.Interaction.ChannelID)
	if err != nil {
		moderatorPerms = 0
	}
	targetPerms, err := ctx.Session.UserChannelPermissions(target.User.ID, ctx.Interaction.ChannelID)
	if err != nil {
		targetPerms = 0
	}

	ok, reason := moderation.CanModerateTarget(ctx.Guild(), ctx.Member(), target, moderatorPerms, targetPerms)
	if !ok {
		ctx.ReplyEphemeral("❌ " + reason)
		return false
	}
	return true
}

// parseTargetID convierte el ID textual del usuario objetivo. Un fallo aquí
// indica un ID malformado de la API; se loguea y se reporta al moderador.
func parseTargetID(ctx *discord.CommandContext, user *discordgo.User) (int64, bool) {
	id, err := moderation.ParseUserID(user.ID)
	if err != nil {
		logger.Error(fmt.Sprintf("ID de usuario inválido en interacción: %v", err), "CMD-Mod")
		ctx.EditReply("❌ ID de usuario inválido.")
		return 0, false
	}
	return id, true
}
