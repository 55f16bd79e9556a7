package utils

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
)

// createStatusCommand creates the /utils status subcommand
func createStatusCommand() *discord.Command {
	return discord.NewCommand(
		"status",
		"Muestra el estado del bot",
		"utils",
		statusHandler,
	)
}

// statusHandler handles the /utils status command
func statusHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		db := database.Get()
		dbStatus, _ := db.GetStatus()
		stats := store.Get().Stats()

		ctx.Reply(fmt.Sprintf(
			"📊 **Estado de PancyGuard**\n"+
				"• Bot: 🟢 Online\n"+
				"• Base de datos: %s\n"+
				"• Servidores: %d\n"+
				"• Advertencias registradas: %d\n"+
				"• Silencios activos: %d\n"+
				"• Baneos registrados: %d",
			dbStatus,
			ctx.Client.GuildCount(),
			stats.TotalWarnings,
			stats.ActiveMutes,
			stats.TotalBans,
		))
	}()
	return nil
}
