// Package mod - /mod warn command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/bwmarrin/discordgo"
)

// createWarnCommand creates the /mod warn subcommand
func createWarnCommand() *discord.Command {
	return discord.NewCommand(
		"warn",
		"Advierte a un usuario",
		"mod",
		warnHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a advertir",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón de la advertencia",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers)
}

// warnHandler handles the /mod warn command
func warnHandler(ctx *discord.CommandContext) error {
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

		warning, err := store.Get().AddWarning(userID, modID, reason)
		if err != nil {
			logger.Error(fmt.Sprintf("Error guardando advertencia: %v", err), "CMD-Warn")
			ctx.EditReply("❌ Error guardando la advertencia.")
			return
		}
		total := len(store.Get().GetWarnings(userID))

		embed := moderation.NewEmbed(
			"⚠️ Usuario Advertido",
			fmt.Sprintf("<@%s> ha sido advertido.", user.ID),
			moderation.ColorWarning,
			moderation.EmbedOptions{
				User:      user,
				Moderator: ctx.User(),
				Reason:    reason,
				Extra: []*discordgo.MessageEmbedField{
					{Name: "ID de advertencia", Value: fmt.Sprintf("%d", warning.WarningID), Inline: true},
					{Name: "Advertencias totales", Value: fmt.Sprintf("%d", total), Inline: true},
				},
			},
		)
		ctx.EditReplyEmbed(embed)
		moderation.LogAction(ctx.Session, embed)

		// Auto-ban al alcanzar el máximo de advertencias.
		maxWarnings := config.Get().MaxWarnings
		if maxWarnings > 0 && total >= maxWarnings {
			autoBan(ctx, user, userID, maxWarnings)
		}
	}()

	return nil
}

// autoBan banea a un usuario que alcanzó el máximo de advertencias. La acción
// externa va primero: si Discord la rechaza no se registra nada.
func autoBan(ctx *discord.CommandContext, user *discordgo.User, userID int64, maxWarnings int) {
	reason := fmt.Sprintf("Auto-ban: alcanzó %d advertencias", maxWarnings)

	if err := ctx.Session.GuildBanCreateWithReason(ctx.Interaction.GuildID, user.ID, reason, 0); err != nil {
		if moderation.IsForbidden(err) {
			ctx.FollowUp("⚠️ El usuario alcanzó el máximo de advertencias pero no pude banearlo por permisos.")
		} else {
			logger.Error(fmt.Sprintf("Error en auto-ban de %s: %v", user.ID, err), "CMD-Warn")
		}
		return
	}

	botID, err := moderation.ParseUserID(ctx.Session.State.User.ID)
	if err != nil {
		botID = 0
	}
	if _, err := store.Get().AddBan(userID, botID, reason); err != nil {
		logger.Error(fmt.Sprintf("Error registrando auto-ban: %v", err), "CMD-Warn")
	}

	embed := moderation.NewEmbed(
		"🚫 Usuario Auto-Baneado",
		fmt.Sprintf("<@%s> fue baneado automáticamente por alcanzar %d advertencias.", user.ID, maxWarnings),
		moderation.ColorError,
		moderation.EmbedOptions{User: user, Reason: reason},
	)
	ctx.FollowUpEmbed(embed)
	moderation.LogAction(ctx.Session, embed)
}
