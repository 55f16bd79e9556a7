package utils

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
)

// createHelpCommand creates the /utils help subcommand
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"Muestra información de ayuda",
		"utils",
		helpHandler,
	)
}

// helpHandler handles the /utils help command
func helpHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		ctx.Reply(
			"📖 **Ayuda de PancyGuard**\n\n" +
				"**Comandos disponibles:**\n" +
				"• `/utils ping` - Comprueba la latencia\n" +
				"• `/utils status` - Estado del bot\n" +
				"• `/utils stats` - Estadísticas del bot\n" +
				"• `/mod warn <usuario> [razón]` - Advierte a un usuario\n" +
				"• `/mod warns <usuario>` - Lista las advertencias\n" +
				"• `/mod clearwarns <usuario>` - Limpia las advertencias\n" +
				"• `/mod mute <usuario> <duración> [razón]` - Silencia a un usuario\n" +
				"• `/mod unmute <usuario>` - Quita el silencio\n" +
				"• `/mod kick <usuario> [razón]` - Expulsa a un usuario\n" +
				"• `/mod ban <usuario> [razón]` - Banea a un usuario\n" +
				"• `/mod unban <id> [razón]` - Quita un baneo\n" +
				"• `/mod purge <cantidad> [usuario]` - Elimina mensajes\n" +
				"• `/mod modinfo <usuario>` - Historial de moderación",
		)
	}()
	return nil
}
