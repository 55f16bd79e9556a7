// Package mod - /mod kick command
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

// createKickCommand creates the /mod kick subcommand
func createKickCommand() *discord.Command {
	return discord.NewCommand(
		"kick",
		"Expulsa a un usuario del servidor",
		"mod",
		kickHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a expulsar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón de la expulsión",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionKickMembers).
		WithBotPermissions(discordgo.PermissionKickMembers)
}

// kickHandler handles the /mod kick command
func kickHandler(ctx *discord.CommandContext) error {
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
	if !canModerate(ctx, target) {
		return nil
	}

	reason := moderation.SanitizeReason(ctx.GetStringOption("razon"))

	go func() {
		defer errors.RecoverMiddleware()()

		if err := ctx.Defer(); err != nil {
			return
		}

		userID, ok := parseTargetID(ctx, user)
		if !ok {
			return
		}
		modID, err := moderation.ParseUserID(ctx.User().ID)
		if err != nil {
			ctx.EditReply("❌ Error interno procesando el comando.")
			return
		}

		// Acción externa primero: si la expulsión falla no se registra nada.
		if err := ctx.Session.GuildMemberDeleteWithReason(ctx.Interaction.GuildID, user.ID, reason); err != nil {
			if moderation.IsForbidden(err) {
				ctx.EditReply("❌ No tengo permisos para expulsar a este usuario.")
			} else {
				ctx.EditReply(fmt.Sprintf("❌ Error al expulsar: %v", err))
			}
			return
		}

		if _, err := store.Get().LogKick(userID, modID, reason); err != nil {
			logger.Error(fmt.Sprintf("Error registrando expulsión: %v", err), "CMD-Kick")
		}

		embed := moderation.NewEmbed(
			"👢 Usuario Expulsado",
			fmt.Sprintf("<@%s> ha sido expulsado del servidor.", user.ID),
			moderation.ColorWarning,
			moderation.EmbedOptions{User: user, Moderator: ctx.User(), Reason: reason},
		)
		ctx.EditReplyEmbed(embed)
		moderation.LogAction(ctx.Session, embed)
	}()

	return nil
}
