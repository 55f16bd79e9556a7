// Package mod - /mod clearwarns command
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

// createClearWarnsCommand creates the /mod clearwarns subcommand
func createClearWarnsCommand() *discord.Command {
	return discord.NewCommand(
		"clearwarns",
		"Elimina todas las advertencias de un usuario",
		"mod",
		clearWarnsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a limpiar",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers)
}

func clearWarnsHandler(ctx *discord.CommandContext) error {
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

		cleared := len(store.Get().GetWarnings(userID))
		if cleared == 0 {
			ctx.EditReply(fmt.Sprintf("❌ <@%s> no tiene advertencias que limpiar.", user.ID))
			return
		}

		if err := store.Get().ClearWarnings(userID); err != nil {
			logger.Error(fmt.Sprintf("Error limpiando advertencias: %v", err), "CMD-ClearWarns")
			ctx.EditReply("❌ Error limpiando las advertencias.")
			return
		}

		embed := moderation.NewEmbed(
			"🧹 Advertencias Limpiadas",
			fmt.Sprintf("Todas las advertencias de <@%s> fueron eliminadas.", user.ID),
			moderation.ColorSuccess,
			moderation.EmbedOptions{
				User:      user,
				Moderator: ctx.User(),
				Extra: []*discordgo.MessageEmbedField{
					{Name: "Advertencias eliminadas", Value: fmt.Sprintf("%d", cleared), Inline: true},
				},
			},
		)
		ctx.EditReplyEmbed(embed)
		moderation.LogAction(ctx.Session, embed)
	}()

	return nil
}
