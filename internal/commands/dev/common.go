package dev

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// getUserName obtiene el nombre del usuario de manera segura
func getUserName(ctx *discord.CommandContext) string {
	if ctx.Interaction.Member != nil && ctx.Interaction.Member.User != nil {
		return ctx.Interaction.Member.User.Username
	}
	if ctx.Interaction.User != nil {
		return ctx.Interaction.User.Username
	}
	return "Unknown"
}

// sendErrorEmbed envía un embed de error
func sendErrorEmbed(ctx *discord.CommandContext, title, description string) {
	embed := &discordgo.MessageEmbed{
		Title:       "❌ " + title,
		Description: description,
		Color:       0xFF0000, // Rojo
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	err := ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})

	if err != nil {
		logger.Error(fmt.Sprintf("Error enviando embed de error: %v", err), "Dev")
	}
}
