// Package web provides API routes for the web server.
package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server) {
	s.GET("/", statusPageHandler)
	s.GET("/health", healthHandler)
	s.GET("/metrics", metricsHandler)
	s.GET("/ws", wsHandler)

	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/stats", statsHandler)
		api.GET("/bot", botInfoHandler)
	}
}

// statusPageHandler renders a small HTML status page with the live
// moderation counters.
func statusPageHandler(c *gin.Context) {
	client := discord.Get()
	stats := store.Get().Stats()

	botState := "🔴 Offline"
	guilds := 0
	uptime := "-"
	if client != nil && client.IsReady() {
		botState = "🟢 Online"
		guilds = client.GuildCount()
		uptime = time.Since(client.StartTime).Round(time.Second).String()
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>PancyGuard - Estado</title>
<style>
body { font-family: sans-serif; background: #2c2f33; color: #ffffff; margin: 2em; }
h1 { color: #7289da; }
table { border-collapse: collapse; }
td { padding: 0.4em 1em; border-bottom: 1px solid #4f545c; }
</style>
</head>
<body>
<h1>🛡️ PancyGuard</h1>
<table>
<tr><td>Estado</td><td>%s</td></tr>
<tr><td>Uptime</td><td>%s</td></tr>
<tr><td>Servidores</td><td>%d</td></tr>
<tr><td>Advertencias</td><td>%d (%d usuarios)</td></tr>
<tr><td>Silencios activos</td><td>%d</td></tr>
<tr><td>Baneos</td><td>%d</td></tr>
<tr><td>Expulsiones</td><td>%d</td></tr>
</table>
<p>💫 - PancyStudios</p>
</body>
</html>`,
		botState,
		uptime,
		guilds,
		stats.TotalWarnings,
		stats.TotalUsersWarned,
		stats.ActiveMutes,
		stats.TotalBans,
		stats.TotalKicks,
	)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// statsHandler returns the aggregated moderation statistics
func statsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, store.Get().Stats())
}

// metricsHandler exposes the moderation counters in plain text
func metricsHandler(c *gin.Context) {
	stats := store.Get().Stats()

	body := fmt.Sprintf(
		"pancyguard_warnings_total %d\n"+
			"pancyguard_warned_users_total %d\n"+
			"pancyguard_active_mutes %d\n"+
			"pancyguard_bans_total %d\n"+
			"pancyguard_kicks_total %d\n"+
			"pancyguard_ws_clients %d\n",
		stats.TotalWarnings,
		stats.TotalUsersWarned,
		stats.ActiveMutes,
		stats.TotalBans,
		stats.TotalKicks,
		GetHub().ClientCount(),
	)

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	uptime := ""
	if client := discord.Get(); client != nil {
		uptime = time.Since(client.StartTime).Round(time.Second).String()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "PancyGuard is running",
		"uptime":  uptime,
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}
