// Package store implements the persistent moderation record store.
// All mutations are serialized by a single mutex, written completely to the
// data file on every change, and followed by a change notification to the
// registered observers.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/goccy/go-json"
)

// fileData es el esquema del archivo de datos. Las claves de usuario son la
// representación textual del ID numérico.
type fileData struct {
	Warnings map[int64][]models.Warning `json:"warnings"`
	Mutes    map[int64]models.Mute      `json:"mutes"`
	Bans     map[int64]models.Ban       `json:"bans"`
	KickLog  []models.KickLogEntry      `json:"kick_log"`
}

func newFileData() fileData {
	return fileData{
		Warnings: make(map[int64][]models.Warning),
		Mutes:    make(map[int64]models.Mute),
		Bans:     make(map[int64]models.Ban),
		KickLog:  make([]models.KickLogEntry, 0),
	}
}

// Store es el dueño único del estado de moderación en memoria y del archivo
// de datos. Todas las operaciones son seguras para uso concurrente.
type Store struct {
	mu       sync.Mutex
	path     string
	data     fileData
	notifier *Notifier

	// muteGen lleva una generación por usuario para invalidar timers de
	// expiración obsoletos. No se persiste: al reiniciar no hay timers vivos.
	muteGen map[int64]uint64

	// nowFunc permite inyectar el reloj en tests.
	nowFunc func() time.Time
}

// Open crea un Store sobre el archivo indicado, cargando el estado previo si
// el archivo existe. Un archivo corrupto o ausente inicia con estado vacío.
func Open(path string) (*Store, error) {
	s := &Store{
		path:     path,
		data:     newFileData(),
		notifier: NewNotifier(),
		muteGen:  make(map[int64]uint64),
		nowFunc:  time.Now,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("leyendo archivo de datos: %w", err)
		}
		return s, nil
	}

	var loaded fileData
	if err := json.Unmarshal(raw, &loaded); err != nil {
		logger.Warn(fmt.Sprintf("Archivo de datos corrupto, iniciando vacío: %v", err), "Store")
		return s, nil
	}

	if loaded.Warnings == nil {
		loaded.Warnings = make(map[int64][]models.Warning)
	}
	if loaded.Mutes == nil {
		loaded.Mutes = make(map[int64]models.Mute)
	}
	if loaded.Bans == nil {
		loaded.Bans = make(map[int64]models.Ban)
	}
	if loaded.KickLog == nil {
		loaded.KickLog = make([]models.KickLogEntry, 0)
	}
	s.data = loaded

	logger.Info(fmt.Sprintf("Datos de moderación cargados desde %s", path), "Store")
	return s, nil
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

// RegisterObserver registra un callback que se invoca tras cada mutación
// persistida. Los observers se llaman en orden de registro.
func (s *Store) RegisterObserver(fn ObserverFunc) {
	s.notifier.Register(fn)
}

// save escribe el archivo completo de forma atómica (temp + rename).
// Debe llamarse con el mutex tomado. Un fallo de escritura se propaga al
// caller de la mutación: la memoria ya está mutada y queda por delante del
// disco hasta la próxima escritura exitosa.
func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("serializando datos: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creando directorio de datos: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("escribiendo archivo temporal: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("reemplazando archivo de datos: %w", err)
	}
	return nil
}

// AddWarning agrega una advertencia. El warning_id es la cantidad de
// advertencias previas del usuario más uno.
func (s *Store) AddWarning(userID, moderatorID int64, reason string) (models.Warning, error) {
	s.mu.Lock()
	warning := models.Warning{
		Reason:      reason,
		ModeratorID: moderatorID,
		Timestamp:   s.nowFunc(),
		WarningID:   len(s.data.Warnings[userID]) + 1,
	}
	s.data.Warnings[userID] = append(s.data.Warnings[userID], warning)
	err := s.save()
	s.mu.Unlock()

	if err != nil {
		return warning, err
	}
	s.notifier.Notify(ChangeEvent{Type: EventWarningAdded, UserID: userID, Data: warning})
	return warning, nil
}

// GetWarnings devuelve las advertencias de un usuario en orden de inserción.
func (s *Store) GetWarnings(userID int64) []models.Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	warnings := make([]models.Warning, len(s.data.Warnings[userID]))
	copy(warnings, s.data.Warnings[userID])
	return warnings
}

// ClearWarnings elimina la lista completa de advertencias de un usuario.
// Si el usuario no tiene advertencias no hace nada y no notifica.
func (s *Store) ClearWarnings(userID int64) error {
	s.mu.Lock()
	if _, ok := s.data.Warnings[userID]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.data.Warnings, userID)
	err := s.save()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.notifier.Notify(ChangeEvent{Type: EventWarningsCleared, UserID: userID})
	return nil
}

// AddMute registra un silencio, sobrescribiendo incondicionalmente cualquier
// mute previo del usuario. Devuelve el registro y la generación del mute,
// que el scheduler usa para invalidar timers obsoletos.
func (s *Store) AddMute(userID, moderatorID int64, durationSecs int64, reason string) (models.Mute, uint64, error) {
	s.mu.Lock()
	now := s.nowFunc()
	mute := models.Mute{
		ModeratorID: moderatorID,
		Duration:    durationSecs,
		Reason:      reason,
		Timestamp:   now,
		ExpiresAt:   now.Add(time.Duration(durationSecs) * time.Second),
	}
	s.data.Mutes[userID] = mute
	s.muteGen[userID]++
	gen := s.muteGen[userID]
	err := s.save()
	s.mu.Unlock()

	if err != nil {
		return mute, gen, err
	}
	s.notifier.Notify(ChangeEvent{Type: EventMuteAdded, UserID: userID, Data: mute})
	return mute, gen, nil
}

// RemoveMute elimina el registro de silencio si existe. No-op si no existe.
func (s *Store) RemoveMute(userID int64) error {
	return s.removeMute(userID, EventMuteRemoved)
}

// ExpireMute elimina el registro de silencio tras la expiración del timer,
// emitiendo un evento de auto-unmute en lugar del evento de unmute manual.
func (s *Store) ExpireMute(userID int64) error {
	return s.removeMute(userID, EventAutoUnmuted)
}

func (s *Store) removeMute(userID int64, eventType string) error {
	s.mu.Lock()
	if _, ok := s.data.Mutes[userID]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.data.Mutes, userID)
	s.muteGen[userID]++
	err := s.save()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.notifier.Notify(ChangeEvent{Type: eventType, UserID: userID})
	return nil
}

// GetMute devuelve el registro de silencio de un usuario si existe.
func (s *Store) GetMute(userID int64) (models.Mute, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mute, ok := s.data.Mutes[userID]
	return mute, ok
}

// Mutes devuelve una copia de todos los silencios registrados.
func (s *Store) Mutes() map[int64]models.Mute {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int64]models.Mute, len(s.data.Mutes))
	for id, mute := range s.data.Mutes {
		out[id] = mute
	}
	return out
}

// MuteGeneration devuelve la generación actual del mute de un usuario.
func (s *Store) MuteGeneration(userID int64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muteGen[userID]
}

// AddBan registra un baneo, sobrescribiendo cualquier registro previo.
func (s *Store) AddBan(userID, moderatorID int64, reason string) (models.Ban, error) {
	s.mu.Lock()
	ban := models.Ban{
		ModeratorID: moderatorID,
		Reason:      reason,
		Timestamp:   s.nowFunc(),
	}
	s.data.Bans[userID] = ban
	err := s.save()
	s.mu.Unlock()

	if err != nil {
		return ban, err
	}
	s.notifier.Notify(ChangeEvent{Type: EventBanAdded, UserID: userID, Data: ban})
	return ban, nil
}

// RemoveBan elimina el registro de baneo si existe. No-op si no existe.
func (s *Store) RemoveBan(userID int64) error {
	s.mu.Lock()
	if _, ok := s.data.Bans[userID]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.data.Bans, userID)
	err := s.save()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.notifier.Notify(ChangeEvent{Type: EventBanRemoved, UserID: userID})
	return nil
}

// GetBan devuelve el registro de baneo de un usuario si existe.
func (s *Store) GetBan(userID int64) (models.Ban, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ban, ok := s.data.Bans[userID]
	return ban, ok
}

// LogKick agrega una entrada al registro de expulsiones.
func (s *Store) LogKick(userID, moderatorID int64, reason string) (models.KickLogEntry, error) {
	s.mu.Lock()
	entry := models.KickLogEntry{
		UserID:      userID,
		ModeratorID: moderatorID,
		Reason:      reason,
		Timestamp:   s.nowFunc(),
	}
	s.data.KickLog = append(s.data.KickLog, entry)
	err := s.save()
	s.mu.Unlock()

	if err != nil {
		return entry, err
	}
	s.notifier.Notify(ChangeEvent{Type: EventKickLogged, UserID: userID, Data: entry})
	return entry, nil
}

// Stats recalcula el snapshot de estadísticas sobre el estado actual.
// Los mutes cuya expiración ya pasó se excluyen de activeMutes aunque el
// scheduler todavía no los haya procesado.
func (s *Store) Stats() models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.Stats{
		TotalBans:  len(s.data.Bans),
		TotalKicks: len(s.data.KickLog),
	}
	for _, warnings := range s.data.Warnings {
		if len(warnings) > 0 {
			stats.TotalUsersWarned++
			stats.TotalWarnings += len(warnings)
		}
	}
	now := s.nowFunc()
	for _, mute := range s.data.Mutes {
		if mute.ExpiresAt.After(now) {
			stats.ActiveMutes++
		}
	}
	return stats
}
