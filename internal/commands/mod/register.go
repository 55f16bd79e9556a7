// Package mod provides moderation commands organized as subcommands under /mod
// Each command is in its own file for better organization
package mod

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

// RegisterModCommands registers all moderation commands as /mod subcommands
func RegisterModCommands(client *discord.ExtendedClient) {
	// Create individual subcommands (each can be in its own file)
	warnCmd := createWarnCommand()
	warnsCmd := createWarnsCommand()
	clearWarnsCmd := createClearWarnsCommand()
	muteCmd := createMuteCommand()
	unmuteCmd := createUnmuteCommand()
	kickCmd := createKickCommand()
	banCmd := createBanCommand()
	unbanCmd := createUnbanCommand()
	purgeCmd := createPurgeCommand()
	modInfoCmd := createModInfoCommand()

	// Build the /mod command group with all subcommands
	modGroup := client.CommandHandler.BuildCommandGroup(
		"mod",
		"Comandos de moderación",
		warnCmd,
		warnsCmd,
		clearWarnsCmd,
		muteCmd,
		unmuteCmd,
		kickCmd,
		banCmd,
		unbanCmd,
		purgeCmd,
		modInfoCmd,
	)

	// Register the command group
	client.CommandHandler.AddGlobalCommand(modGroup)
}
