package models

import "time"

// AuditEntry es el espejo en MongoDB de un cambio de moderación. El archivo
// JSON local sigue siendo la fuente de verdad, esta colección solo alimenta
// paneles externos.
type AuditEntry struct {
	EventType string    `bson:"event_type" json:"event_type"`
	UserID    int64     `bson:"user_id" json:"user_id"`
	Detail    any       `bson:"detail,omitempty" json:"detail,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
