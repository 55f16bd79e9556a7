package models

import "time"

// Warning representa una advertencia individual de un usuario.
// El WarningID es secuencial por usuario (1..N) y se reinicia al limpiar
// la lista completa.
type Warning struct {
	Reason      string    `json:"reason"`
	ModeratorID int64     `json:"moderator_id"`
	Timestamp   time.Time `json:"timestamp"`
	WarningID   int       `json:"warning_id"`
}

// Mute representa un silencio temporal activo. Solo puede existir un
// registro por usuario; un nuevo mute sobrescribe al anterior.
type Mute struct {
	ModeratorID int64     `json:"moderator_id"`
	Duration    int64     `json:"duration"`
	Reason      string    `json:"reason"`
	Timestamp   time.Time `json:"timestamp"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Ban representa un baneo registrado. Su presencia es un marcador booleano,
// independiente de si la plataforma externa sigue aplicando el ban.
type Ban struct {
	ModeratorID int64     `json:"moderator_id"`
	Reason      string    `json:"reason"`
	Timestamp   time.Time `json:"timestamp"`
}

// KickLogEntry es una entrada del registro de expulsiones. El log es
// ordenado, sin límite y nunca se eliminan entradas.
type KickLogEntry struct {
	UserID      int64     `json:"user_id"`
	ModeratorID int64     `json:"moderator_id"`
	Reason      string    `json:"reason"`
	Timestamp   time.Time `json:"timestamp"`
}

// Stats es un snapshot de las estadísticas de moderación, derivado bajo
// demanda del estado actual del store.
type Stats struct {
	TotalWarnings    int `json:"total_warnings"`
	TotalUsersWarned int `json:"total_users_warned"`
	ActiveMutes      int `json:"active_mutes"`
	TotalBans        int `json:"total_bans"`
	TotalKicks       int `json:"total_kicks"`
}
