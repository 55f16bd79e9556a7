package store

import (
	"fmt"
	"sync"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
)

// Tipos de evento emitidos tras cada mutación persistida.
const (
	EventWarningAdded    = "warning_added"
	EventWarningsCleared = "warnings_cleared"
	EventMuteAdded       = "mute_added"
	EventMuteRemoved     = "mute_removed"
	EventAutoUnmuted     = "auto_unmuted"
	EventBanAdded        = "ban_added"
	EventBanRemoved      = "ban_removed"
	EventKickLogged      = "kick_logged"
)

// ChangeEvent describe una mutación del store ya persistida.
type ChangeEvent struct {
	Type   string `json:"type"`
	UserID int64  `json:"user_id"`
	Data   any    `json:"data,omitempty"`
}

// ObserverFunc recibe eventos de cambio. Un panic dentro del observer se
// recupera y se loguea; nunca llega al caller de la mutación.
type ObserverFunc func(event ChangeEvent)

// Notifier mantiene la lista ordenada de observers y hace el fan-out de
// eventos de cambio. No persiste nada ni garantiza orden entre mutaciones
// concurrentes de distintos callers.
type Notifier struct {
	mu        sync.RWMutex
	observers []ObserverFunc
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{observers: make([]ObserverFunc, 0)}
}

// Register agrega un observer al final de la lista.
func (n *Notifier) Register(fn ObserverFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.observers = append(n.observers, fn)
}

// Notify invoca cada observer en orden de registro, de forma síncrona.
// Un observer que falla no bloquea ni rompe a los demás.
func (n *Notifier) Notify(event ChangeEvent) {
	n.mu.RLock()
	observers := make([]ObserverFunc, len(n.observers))
	copy(observers, n.observers)
	n.mu.RUnlock()

	for _, fn := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error(fmt.Sprintf("Observer falló procesando evento %s: %v", event.Type, r), "Notifier")
				}
			}()
			fn(event)
		}()
	}
}
