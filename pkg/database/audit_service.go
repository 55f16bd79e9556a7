// Package database - mirror of moderation changes into MongoDB.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
)

// AttachAuditMirror registers an observer on the moderation store that
// inserts every change into the audit_log collection. The local JSON file
// stays authoritative, Mongo falling over never blocks a moderation action.
func AttachAuditMirror(db *Database, st *store.Store) {
	st.RegisterObserver(func(ev store.ChangeEvent) {
		if !db.Connected() {
			return
		}

		entry := models.AuditEntry{
			EventType: ev.Type,
			UserID:    ev.UserID,
			Detail:    ev.Data,
			CreatedAt: time.Now(),
		}

		coll := db.GetCollection("audit_log")
		if coll == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := coll.InsertOne(ctx, entry); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo espejar el evento '%s' en Mongo: %v", ev.Type, err), "AuditMirror")
		}
	})

	logger.System("Espejo de auditoría en MongoDB activado", "AuditMirror")
}
