// Package mod - /mod warns command
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

// createWarnsCommand creates the /mod warns subcommand
func createWarnsCommand() *discord.Command {
	return discord.NewCommand(
		"warns",
		"Lista de advertencias de un usuario",
		"mod",
		warnsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a consultar",
			Required:    true,
		},
	)
}

func warnsHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	if !requireMod(ctx) {
		return nil
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

		warnings := store.Get().GetWarnings(userID)

		if len(warnings) == 0 {
			embed := moderation.NewEmbed(
				"📋 Advertencias del Usuario",
				fmt.Sprintf("<@%s> no tiene advertencias.", user.ID),
				moderation.ColorSuccess,
				moderation.EmbedOptions{User: user},
			)
			ctx.EditReplyEmbed(embed)
			return
		}

		embed := moderation.NewEmbed(
			"📋 Advertencias del Usuario",
			fmt.Sprintf("<@%s> tiene %d advertencia(s):", user.ID, len(warnings)),
			moderation.ColorInfo,
			moderation.EmbedOptions{User: user},
		)
		for _, warning := range warnings {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name: fmt.Sprintf("Advertencia #%d", warning.WarningID),
				Value: fmt.Sprintf("**Razón:** %s\n**Moderador:** <@%d>\n**Fecha:** <t:%d:R>",
					warning.Reason, warning.ModeratorID, warning.Timestamp.Unix()),
				Inline: false,
			})
		}
		embed.Timestamp = time.Now().Format(time.RFC3339)

		ctx.EditReplyEmbed(embed)
	}()

	return nil
}
