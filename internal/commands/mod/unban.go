// Package mod - /mod unban command
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

// createUnbanCommand creates the /mod unban subcommand
func createUnbanCommand() *discord.Command {
	return discord.NewCommand(
		"unban",
		"Desbanea a un usuario por su ID",
		"mod",
		unbanHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "id",
			Description: "ID del usuario a desbanear",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del desbaneo",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithBotPermissions(discordgo.PermissionBanMembers)
}

// unbanHandler handles the /mod unban command
func unbanHandler(ctx *discord.CommandContext) error {
	rawID := ctx.GetStringOption("id")

	if !requireMod(ctx) {
		return nil
	}

	userID, err := moderation.ParseUserID(rawID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ Formato de ID de usuario inválido.")
	}

	reason := moderation.SanitizeReason(ctx.GetStringOption("razon"))

	go func() {
		defer errors.RecoverMiddleware()()

		if err := ctx.Defer(); err != nil {
			return
		}

		// Acción externa primero.
		if err := ctx.Session.GuildBanDelete(ctx.Interaction.GuildID, rawID); err != nil {
			if moderation.IsForbidden(err) {
				ctx.EditReply("❌ No tengo permisos para desbanear.")
			} else {
				ctx.EditReply("❌ No se pudo desbanear. ¿El usuario está baneado?")
			}
			return
		}

		if err := store.Get().RemoveBan(userID); err != nil {
			logger.Error(fmt.Sprintf("Error eliminando registro de ban: %v", err), "CMD-Unban")
		}

		embed := moderation.NewEmbed(
			"✅ Usuario Desbaneado",
			fmt.Sprintf("<@%s> ha sido desbaneado del servidor.", rawID),
			moderation.ColorSuccess,
			moderation.EmbedOptions{Moderator: ctx.User(), Reason: reason},
		)
		ctx.EditReplyEmbed(embed)
		moderation.LogAction(ctx.Session, embed)
	}()

	return nil
}
