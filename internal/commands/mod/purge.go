// Package mod - /mod purge command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
)

// createPurgeCommand creates the /mod purge subcommand
func createPurgeCommand() *discord.Command {
	return discord.NewCommand(
		"purge",
		"Elimina varios mensajes del canal",
		"mod",
		purgeHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "cantidad",
			Description: "Cantidad de mensajes a eliminar (1-100)",
			Required:    true,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
			MaxValue:    100,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Solo eliminar mensajes de este usuario (opcional)",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionManageMessages).
		WithBotPermissions(discordgo.PermissionManageMessages)
}

// purgeHandler handles the /mod purge command
func purgeHandler(ctx *discord.CommandContext) error {
	if !requireMod(ctx) {
		return nil
	}

	amount := int(ctx.GetIntOption("cantidad"))
	if amount < 1 || amount > 100 {
		return ctx.ReplyEphemeral("❌ La cantidad debe estar entre 1 y 100.")
	}

	filterUser := ctx.GetUserOption("usuario")

	go func() {
		defer errors.RecoverMiddleware()()

		if err := ctx.Defer(); err != nil {
			return
		}

		messages, err := ctx.Session.ChannelMessages(ctx.Interaction.ChannelID, amount, "", "", "")
		if err != nil {
			ctx.EditReply(fmt.Sprintf("❌ Error obteniendo mensajes: %v", err))
			return
		}

		ids := make([]string, 0, len(messages))
		for _, msg := range messages {
			if filterUser != nil && msg.Author.ID != filterUser.ID {
				continue
			}
			ids = append(ids, msg.ID)
		}

		if len(ids) == 0 {
			ctx.EditReply("❌ No se encontraron mensajes para eliminar.")
			return
		}

		if err := ctx.Session.ChannelMessagesBulkDelete(ctx.Interaction.ChannelID, ids); err != nil {
			if moderation.IsForbidden(err) {
				ctx.EditReply("❌ No tengo permisos para eliminar mensajes aquí.")
			} else {
				ctx.EditReply(fmt.Sprintf("❌ Error eliminando mensajes: %v", err))
			}
			return
		}

		extra := []*discordgo.MessageEmbedField{
			{Name: "Canal", Value: fmt.Sprintf("<#%s>", ctx.Interaction.ChannelID), Inline: true},
			{Name: "Cantidad", Value: fmt.Sprintf("%d", len(ids)), Inline: true},
		}
		if filterUser != nil {
			extra = append(extra, &discordgo.MessageEmbedField{
				Name: "Filtro de usuario", Value: fmt.Sprintf("<@%s>", filterUser.ID), Inline: true,
			})
		}

		embed := moderation.NewEmbed(
			"🗑️ Mensajes Eliminados",
			fmt.Sprintf("Se eliminaron %d mensaje(s).", len(ids)),
			moderation.ColorSuccess,
			moderation.EmbedOptions{Moderator: ctx.User(), Extra: extra},
		)
		ctx.EditReplyEmbed(embed)
		moderation.LogAction(ctx.Session, embed)
	}()

	return nil
}
