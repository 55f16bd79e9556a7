// Package mod - /mod unmute command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/bwmarrin/discordgo"
)

// createUnmuteCommand creates the /mod unmute subcommand
func createUnmuteCommand() *discord.Command {
	return discord.NewCommand(
		"unmute",
		"Quita el silencio a un usuario inmediatamente",
		"mod",
		unmuteHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a des-silenciar",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionManageRoles)
}

// unmuteHandler handles the /mod unmute command
func unmuteHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	if !requireMod(ctx) {
		return nil
	}

	target := targetMember(ctx, user)
	if target == nil {
		return ctx.ReplyEphemeral("❌ El usuario no está en el servidor.")
	}

	guild := ctx.Guild()
	if guild == nil || !moderation.HasMutedRole(guild, target) {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ <@%s> no está silenciado.", user.ID))
	}

	go func() {
		defer errors.RecoverMiddleware()()

		if err := ctx.Defer(); err != nil {
			return
		}

		userID, ok := parseTargetID(ctx, user)
		if !ok {
			return
		}

		role, err := moderation.GetOrCreateMutedRole(ctx.Session, ctx.Interaction.GuildID)
		if err != nil {
			ctx.EditReply("❌ No se pudo resolver el rol de silencio.")
			return
		}
		if err := ctx.Session.GuildMemberRoleRemove(ctx.Interaction.GuildID, user.ID, role.ID); err != nil {
			if moderation.IsForbidden(err) {
				ctx.EditReply("❌ No tengo permisos para quitar el silencio.")
			} else {
				ctx.EditReply(fmt.Sprintf("❌ Error al quitar el silencio: %v", err))
			}
			return
		}

		// Cancelar el timer pendiente y eliminar el registro.
		store.Scheduler().Cancel(userID)
		if err := store.Get().RemoveMute(userID); err != nil {
			logger.Error(fmt.Sprintf("Error eliminando mute: %v", err), "CMD-Unmute")
			ctx.EditReply("❌ Error actualizando el registro de silencio.")
			return
		}

		embed := moderation.NewEmbed(
			"🔊 Usuario Des-silenciado",
			fmt.Sprintf("<@%s> ya puede hablar de nuevo.", user.ID),
			moderation.ColorSuccess,
			moderation.EmbedOptions{User: user, Moderator: ctx.User()},
		)
		ctx.EditReplyEmbed(embed)
		moderation.LogAction(ctx.Session, embed)
	}()

	return nil
}
