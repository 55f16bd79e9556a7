package moderation

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// Colores estándar de los embeds de moderación.
const (
	ColorSuccess = 0x00FF00
	ColorWarning = 0xFFFF00
	ColorError   = 0xFF0000
	ColorInfo    = 0x0099FF
)

// EmbedOptions agrupa los campos opcionales de un embed de moderación.
type EmbedOptions struct {
	User      *discordgo.User
	Moderator *discordgo.User
	Reason    string
	Extra     []*discordgo.MessageEmbedField
}

// NewEmbed construye un embed de moderación estandarizado, con los campos de
// usuario, moderador y razón cuando están presentes.
func NewEmbed(title, description string, color int, opts EmbedOptions) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 - PancyGuard | PancyStudios",
		},
	}

	if opts.User != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Usuario",
			Value:  fmt.Sprintf("<@%s> (%s)", opts.User.ID, opts.User.ID),
			Inline: true,
		})
	}
	if opts.Moderator != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Moderador",
			Value:  fmt.Sprintf("<@%s> (%s)", opts.Moderator.ID, opts.Moderator.ID),
			Inline: true,
		})
	}
	if opts.Reason != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Razón",
			Value:  opts.Reason,
			Inline: false,
		})
	}
	embed.Fields = append(embed.Fields, opts.Extra...)

	return embed
}

// LogAction envía un embed de moderación al canal de logs configurado.
// Los fallos se loguean y se descartan: el log nunca bloquea la acción.
func LogAction(s *discordgo.Session, embed *discordgo.MessageEmbed) {
	channelID := config.Get().LogChannelID
	if channelID == "" {
		return
	}

	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		logger.Error(fmt.Sprintf("Error enviando log de moderación: %v", err), "Moderation")
	}
}
