package store

import (
	"sync"
	"testing"
	"time"
)

// fakeAction implementa UnmuteAction para tests, registrando las revocaciones.
type fakeAction struct {
	mu       sync.Mutex
	member   bool
	muted    bool
	unmuted  []int64
	unmuteCh chan int64
}

func newFakeAction() *fakeAction {
	return &fakeAction{member: true, muted: true, unmuteCh: make(chan int64, 8)}
}

func (f *fakeAction) IsMember(userID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.member
}

func (f *fakeAction) IsMuted(userID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.muted
}

func (f *fakeAction) Unmute(userID int64) error {
	f.mu.Lock()
	f.unmuted = append(f.unmuted, userID)
	f.mu.Unlock()
	f.unmuteCh <- userID
	return nil
}

func (f *fakeAction) unmuteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.unmuted)
}

func TestSchedulerFiresAndRemovesMute(t *testing.T) {
	s := newTestStore(t)
	action := newFakeAction()
	sched := NewExpiryScheduler(s, action)
	defer sched.Stop()

	var autoUnmutes int
	var obsMu sync.Mutex
	s.RegisterObserver(func(event ChangeEvent) {
		if event.Type == EventAutoUnmuted {
			obsMu.Lock()
			autoUnmutes++
			obsMu.Unlock()
		}
	})

	_, gen, err := s.AddMute(1, 2, 1, "spam")
	if err != nil {
		t.Fatalf("AddMute() returned error: %v", err)
	}
	sched.Schedule(1, 20*time.Millisecond, gen)

	select {
	case <-action.unmuteCh:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not fire")
	}

	// Dar tiempo a que ExpireMute y la notificación terminen.
	deadline := time.Now().Add(time.Second)
	for {
		if _, ok := s.GetMute(1); !ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("mute still present after scheduler fired")
		}
		time.Sleep(5 * time.Millisecond)
	}

	obsMu.Lock()
	got := autoUnmutes
	obsMu.Unlock()
	if got != 1 {
		t.Errorf("auto_unmuted events = %d, want 1", got)
	}
}

func TestSchedulerStaleGenerationIsNoop(t *testing.T) {
	s := newTestStore(t)
	action := newFakeAction()
	sched := NewExpiryScheduler(s, action)
	defer sched.Stop()

	_, gen1, _ := s.AddMute(1, 2, 1, "primero")

	// Unmute y remute rápido: el timer del primer mute queda obsoleto.
	s.RemoveMute(1)
	_, _, _ = s.AddMute(1, 3, 3600, "segundo")

	// Disparar manualmente el timer obsoleto.
	sched.fire(1, gen1)

	if action.unmuteCount() != 0 {
		t.Errorf("stale timer performed %d unmutes, want 0", action.unmuteCount())
	}
	if _, ok := s.GetMute(1); !ok {
		t.Error("stale timer removed the newer mute")
	}
}

func TestSchedulerCancelPreventsFiring(t *testing.T) {
	s := newTestStore(t)
	action := newFakeAction()
	sched := NewExpiryScheduler(s, action)
	defer sched.Stop()

	_, gen, _ := s.AddMute(1, 2, 1, "spam")
	sched.Schedule(1, 30*time.Millisecond, gen)
	sched.Cancel(1)

	time.Sleep(100 * time.Millisecond)
	if action.unmuteCount() != 0 {
		t.Errorf("cancelled timer performed %d unmutes, want 0", action.unmuteCount())
	}
}

func TestSchedulerSkipsWhenNotMember(t *testing.T) {
	s := newTestStore(t)
	action := newFakeAction()
	action.member = false
	sched := NewExpiryScheduler(s, action)
	defer sched.Stop()

	_, gen, _ := s.AddMute(1, 2, 1, "spam")
	sched.fire(1, gen)

	if action.unmuteCount() != 0 {
		t.Errorf("scheduler unmuted a non-member %d times, want 0", action.unmuteCount())
	}
	// El registro queda: el store sigue siendo la fuente de verdad.
	if _, ok := s.GetMute(1); !ok {
		t.Error("mute record removed for non-member, want kept")
	}
}

func TestSchedulerSkipsWhenExternallyUnmuted(t *testing.T) {
	s := newTestStore(t)
	action := newFakeAction()
	action.muted = false
	sched := NewExpiryScheduler(s, action)
	defer sched.Stop()

	_, gen, _ := s.AddMute(1, 2, 1, "spam")
	sched.fire(1, gen)

	if action.unmuteCount() != 0 {
		t.Errorf("scheduler unmuted %d times with role already removed, want 0", action.unmuteCount())
	}
}

func TestSchedulerRescheduleReplacesTimer(t *testing.T) {
	s := newTestStore(t)
	action := newFakeAction()
	sched := NewExpiryScheduler(s, action)
	defer sched.Stop()

	_, gen1, _ := s.AddMute(1, 2, 1, "primero")
	sched.Schedule(1, 30*time.Millisecond, gen1)

	_, gen2, _ := s.AddMute(1, 2, 1, "segundo")
	sched.Schedule(1, 40*time.Millisecond, gen2)

	select {
	case <-action.unmuteCh:
	case <-time.After(2 * time.Second):
		t.Fatal("rescheduled timer did not fire")
	}

	time.Sleep(50 * time.Millisecond)
	if action.unmuteCount() != 1 {
		t.Errorf("unmutes = %d, want exactly 1 (old timer replaced)", action.unmuteCount())
	}
}
