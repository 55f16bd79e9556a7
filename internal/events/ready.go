// Package events provides event handlers for the bot
package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/bwmarrin/discordgo"
)

var rescheduleOnce sync.Once

// RegisterReadyEvent registers the ready event handler
func RegisterReadyEvent(client *discord.ExtendedClient) {
	client.Session.AddHandler(onReady)
	client.Session.AddHandler(onDebug)
}

// onReady is called when the bot successfully connects to Discord
func onReady(s *discordgo.Session, r *discordgo.Ready) {
	logger.Success(fmt.Sprintf("✅ Bot conectado: %s#%s", r.User.Username, r.User.Discriminator), "Ready")
	logger.Info(fmt.Sprintf("📊 Conectado a %d servidores", len(r.Guilds)), "Ready")

	// Establecer estado del bot
	err := s.UpdateGameStatus(0, "🛡️ Protegiendo el servidor | /mod")
	if err != nil {
		logger.Error(fmt.Sprintf("Error estableciendo estado: %v", err), "Ready")
		return
	}

	// Reprogramar los silencios pendientes tras un reinicio. Solo una vez,
	// los ready por reconexión no deben duplicar timers.
	rescheduleOnce.Do(reschedulePendingMutes)

	logger.Debug("Estado del bot establecido correctamente", "Ready")
}

// reschedulePendingMutes restaura los timers de expiración de los silencios
// guardados en disco. Los que ya expiraron se procesan de inmediato.
func reschedulePendingMutes() {
	db := store.Get()
	scheduler := store.Scheduler()

	count := 0
	for userID, mute := range db.Mutes() {
		if mute.Duration <= 0 {
			continue
		}
		remaining := time.Until(mute.ExpiresAt)
		if remaining < 0 {
			remaining = 0
		}
		scheduler.Schedule(userID, remaining, db.MuteGeneration(userID))
		count++
	}

	if count > 0 {
		logger.Info(fmt.Sprintf("⏲️ %d silencio(s) reprogramado(s) tras el reinicio", count), "Ready")
	}
}

func onDebug(s *discordgo.Session, log string) {
	logger.Debug(log, "DiscordGO")
}
