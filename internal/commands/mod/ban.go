// Package mod - /mod ban command
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

// createBanCommand creates the /mod ban subcommand
func createBanCommand() *discord.Command {
	return discord.NewCommand(
		"ban",
		"Banea a un usuario del servidor",
		"mod",
		banHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a banear",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del ban",
			Required:    false,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "dias",
			Description: "Días de mensajes a eliminar (0-7)",
			Required:    false,
			MinValue:    func() *float64 { v := 0.0; return &v }(),
			MaxValue:    7,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithBotPermissions(discordgo.PermissionBanMembers)
}

// banHandler handles the /mod ban command
func banHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	if !requireMod(ctx) {
		return nil
	}

	if target := targetMember(ctx, user); target != nil {
		if !canModerate(ctx, target) {
			return nil
		}
	}

	reason := moderation.SanitizeReason(ctx.GetStringOption("razon"))
	days := int(ctx.GetIntOption("dias"))

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

		// Acción externa primero: si Discord rechaza el ban no se registra.
		if err := ctx.Session.GuildBanCreateWithReason(ctx.Interaction.GuildID, user.ID, reason, days); err != nil {
			if moderation.IsForbidden(err) {
				ctx.EditReply("❌ No tengo permisos para banear a este usuario.")
			} else {
				ctx.EditReply(fmt.Sprintf("❌ Error al banear: %v", err))
			}
			return
		}

		if _, err := store.Get().AddBan(userID, modID, reason); err != nil {
			logger.Error(fmt.Sprintf("Error registrando ban: %v", err), "CMD-Ban")
		}

		embed := moderation.NewEmbed(
			"🚫 Usuario Baneado",
			fmt.Sprintf("<@%s> ha sido baneado del servidor.", user.ID),
			moderation.ColorError,
			moderation.EmbedOptions{User: user, Moderator: ctx.User(), Reason: reason},
		)
		ctx.EditReplyEmbed(embed)
		moderation.LogAction(ctx.Session, embed)
	}()

	return nil
}
