package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
)

// UnmuteAction son las acciones externas que el scheduler necesita al expirar
// un mute. Las implementa la capa de Discord; el scheduler no conoce roles ni
// sesiones.
type UnmuteAction interface {
	// IsMember reporta si el usuario sigue siendo miembro del servidor.
	IsMember(userID int64) bool
	// IsMuted reporta si el usuario sigue silenciado externamente.
	IsMuted(userID int64) bool
	// Unmute revoca el estado de silencio externo.
	Unmute(userID int64) error
}

type scheduledMute struct {
	timer      *time.Timer
	generation uint64
}

// ExpiryScheduler mantiene un timer por mute activo. Un nuevo mute para el
// mismo usuario reprograma el timer; un unmute explícito lo cancela. Si un
// timer obsoleto llega a disparar, el chequeo de generación lo convierte en
// no-op antes de tocar el store.
type ExpiryScheduler struct {
	store  *Store
	action UnmuteAction
	mu     sync.Mutex
	timers map[int64]*scheduledMute
}

// NewExpiryScheduler creates a scheduler bound to a store and the external
// unmute action.
func NewExpiryScheduler(s *Store, action UnmuteAction) *ExpiryScheduler {
	return &ExpiryScheduler{
		store:  s,
		action: action,
		timers: make(map[int64]*scheduledMute),
	}
}

// Schedule programa la expiración de un mute recién creado. La generación
// debe ser la devuelta por Store.AddMute para ese mute.
func (es *ExpiryScheduler) Schedule(userID int64, duration time.Duration, generation uint64) {
	es.mu.Lock()
	defer es.mu.Unlock()

	if prev, ok := es.timers[userID]; ok {
		prev.timer.Stop()
	}

	sm := &scheduledMute{generation: generation}
	sm.timer = time.AfterFunc(duration, func() {
		es.fire(userID, generation)
	})
	es.timers[userID] = sm

	logger.Debug(fmt.Sprintf("Expiración de mute programada para %d en %s", userID, duration), "Scheduler")
}

// Cancel cancela el timer pendiente de un usuario, si existe. Se llama en el
// unmute explícito; un timer ya disparado se neutraliza por generación.
func (es *ExpiryScheduler) Cancel(userID int64) {
	es.mu.Lock()
	defer es.mu.Unlock()

	if sm, ok := es.timers[userID]; ok {
		sm.timer.Stop()
		delete(es.timers, userID)
	}
}

// Stop cancela todos los timers pendientes.
func (es *ExpiryScheduler) Stop() {
	es.mu.Lock()
	defer es.mu.Unlock()

	for userID, sm := range es.timers {
		sm.timer.Stop()
		delete(es.timers, userID)
	}
}

// fire se ejecuta al vencer el timer de un mute.
func (es *ExpiryScheduler) fire(userID int64, generation uint64) {
	es.mu.Lock()
	if sm, ok := es.timers[userID]; ok && sm.generation == generation {
		delete(es.timers, userID)
	}
	es.mu.Unlock()

	// Un unmute+remute posterior ya incrementó la generación: este timer es
	// obsoleto y no debe tocar el mute nuevo.
	if es.store.MuteGeneration(userID) != generation {
		logger.Debug(fmt.Sprintf("Timer obsoleto para %d ignorado (generación cambió)", userID), "Scheduler")
		return
	}

	if !es.action.IsMember(userID) {
		logger.Debug(fmt.Sprintf("Usuario %d ya no es miembro, expiración sin acción", userID), "Scheduler")
		return
	}

	if !es.action.IsMuted(userID) {
		return
	}

	if err := es.action.Unmute(userID); err != nil {
		logger.Error(fmt.Sprintf("Error revocando silencio de %d: %v", userID, err), "Scheduler")
		return
	}

	if err := es.store.ExpireMute(userID); err != nil {
		logger.Error(fmt.Sprintf("Error eliminando mute expirado de %d: %v", userID, err), "Scheduler")
		return
	}

	logger.Info(fmt.Sprintf("🔊 Mute de %d expiró y fue revocado automáticamente", userID), "Scheduler")
}
