// Package mod - /mod modinfo command
package mod

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/bwmarrin/discordgo"
)

// createModInfoCommand creates the /mod modinfo subcommand
func createModInfoCommand() *discord.Command {
	return discord.NewCommand(
		"modinfo",
		"Muestra el historial de moderación de un usuario",
		"mod",
		modInfoHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a consultar",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionManageMessages)
}

// modInfoHandler handles the /mod modinfo command
func modInfoHandler(ctx *discord.CommandContext) error {
	if !requireMod(ctx) {
		return nil
	}

	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
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

		db := store.Get()
		warnings := db.GetWarnings(userID)
		mute, muted := db.GetMute(userID)
		ban, banned := db.GetBan(userID)

		fields := []*discordgo.MessageEmbedField{
			{Name: "Advertencias", Value: fmt.Sprintf("%d", len(warnings)), Inline: true},
		}

		if len(warnings) > 0 {
			last := warnings[len(warnings)-1]
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   fmt.Sprintf("Última advertencia (#%d)", last.WarningID),
				Value:  fmt.Sprintf("%s\nModerador: <@%d> | <t:%d:R>", last.Reason, last.ModeratorID, last.Timestamp.Unix()),
				Inline: false,
			})
		}

		if muted {
			value := fmt.Sprintf("Razón: %s\nModerador: <@%d>", mute.Reason, mute.ModeratorID)
			if mute.Duration > 0 {
				value += fmt.Sprintf("\nDuración: %s\nExpira: <t:%d:R>",
					moderation.FormatDuration(mute.Duration), mute.ExpiresAt.Unix())
			}
			if mute.ExpiresAt.Before(time.Now()) {
				value += "\n⚠️ El silencio ya expiró pero el registro sigue activo."
			}
			fields = append(fields, &discordgo.MessageEmbedField{
				Name: "🔇 Silenciado", Value: value, Inline: false,
			})
		}

		if banned {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   "🔨 Baneado",
				Value:  fmt.Sprintf("Razón: %s\nModerador: <@%d> | <t:%d:R>", ban.Reason, ban.ModeratorID, ban.Timestamp.Unix()),
				Inline: false,
			})
		}

		if len(warnings) == 0 && !muted && !banned {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name: "Historial", Value: "✅ Este usuario no tiene registros de moderación.", Inline: false,
			})
		}

		embed := moderation.NewEmbed(
			"📋 Historial de Moderación",
			fmt.Sprintf("Registros de <@%s>", user.ID),
			moderation.ColorInfo,
			moderation.EmbedOptions{User: user, Moderator: ctx.User(), Extra: fields},
		)
		ctx.EditReplyEmbed(embed)
	}()

	return nil
}
