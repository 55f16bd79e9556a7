// Package mqtt - moderation event bridging for external services.
package mqtt

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
)

// AttachModerationEvents registers an observer on the moderation store that
// publishes every change to the broker. External dashboards and other bots
// of the network consume these topics.
func AttachModerationEvents(mc *MqttCommunicator, db *store.Store) {
	if mc == nil || !mc.IsConnected() {
		logger.Warn("MQTT no conectado, los eventos de moderación no se publicarán", "MQTT")
		return
	}

	db.RegisterObserver(func(ev store.ChangeEvent) {
		topic := fmt.Sprintf("pancyguard/events/moderation/%s", ev.Type)
		payload := map[string]interface{}{
			"type":    ev.Type,
			"user_id": ev.UserID,
			"data":    ev.Data,
		}
		if err := mc.Publish(topic, payload); err != nil {
			logger.Error(fmt.Sprintf("Error publicando evento de moderación: %v", err), "MQTT")
		}
	})

	logger.System("Eventos de moderación enlazados al broker MQTT", "MQTT")
}

// RegisterStatsHandler answers stats requests from other services with the
// current moderation counters.
func RegisterStatsHandler(mc *MqttCommunicator, db *store.Store) {
	if mc == nil || !mc.IsConnected() {
		return
	}

	mc.On("moderation/stats", func(payload map[string]interface{}) (interface{}, error) {
		return db.Stats(), nil
	})
}
