// Package mod - /mod mute command
package mod

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/bwmarrin/discordgo"
)

// createMuteCommand creates the /mod mute subcommand
func createMuteCommand() *discord.Command {
	return discord.NewCommand(
		"mute",
		"Silencia a un usuario temporalmente",
		"mod",
		muteHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a silenciar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duracion",
			Description: "Duración (ej: 5m, 1h, 2d)",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del silencio",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionManageRoles)
}

// muteHandler handles the /mod mute command
func muteHandler(ctx *discord.CommandContext) error {
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

	durationSecs, ok := moderation.ParseDuration(ctx.GetStringOption("duracion"))
	if !ok {
		return ctx.ReplyEphemeral("❌ Duración inválida. Usa formatos como: 5m, 1h, 2d.")
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

		// Acción externa primero: rol de silencio. Si falla, no se registra.
		role, err := moderation.GetOrCreateMutedRole(ctx.Session, ctx.Interaction.GuildID)
		if err != nil {
			ctx.EditReply("❌ No se pudo obtener o crear el rol de silencio.")
			return
		}
		if err := ctx.Session.GuildMemberRoleAdd(ctx.Interaction.GuildID, user.ID, role.ID); err != nil {
			if moderation.IsForbidden(err) {
				ctx.EditReply("❌ No tengo permisos para silenciar a este usuario.")
			} else {
				ctx.EditReply(fmt.Sprintf("❌ Error al silenciar: %v", err))
			}
			return
		}

		mute, generation, err := store.Get().AddMute(userID, modID, durationSecs, reason)
		if err != nil {
			logger.Error(fmt.Sprintf("Error guardando mute: %v", err), "CMD-Mute")
			ctx.EditReply("❌ Error guardando el silencio.")
			return
		}

		store.Scheduler().Schedule(userID, time.Duration(durationSecs)*time.Second, generation)

		embed := moderation.NewEmbed(
			"🔇 Usuario Silenciado",
			fmt.Sprintf("<@%s> ha sido silenciado.", user.ID),
			moderation.ColorWarning,
			moderation.EmbedOptions{
				User:      user,
				Moderator: ctx.User(),
				Reason:    reason,
				Extra: []*discordgo.MessageEmbedField{
					{Name: "Duración", Value: moderation.FormatDuration(durationSecs), Inline: true},
					{Name: "Expira", Value: fmt.Sprintf("<t:%d:R>", mute.ExpiresAt.Unix()), Inline: true},
				},
			},
		)
		ctx.EditReplyEmbed(embed)
		moderation.LogAction(ctx.Session, embed)
	}()

	return nil
}
