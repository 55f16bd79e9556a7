package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "moderation_data.json"))
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	return s
}

func TestAddWarningSequentialIDs(t *testing.T) {
	s := newTestStore(t)

	for i := 1; i <= 5; i++ {
		w, err := s.AddWarning(100, 200, "spam")
		if err != nil {
			t.Fatalf("AddWarning() returned error: %v", err)
		}
		if w.WarningID != i {
			t.Errorf("WarningID = %d, want %d", w.WarningID, i)
		}
	}

	warnings := s.GetWarnings(100)
	if len(warnings) != 5 {
		t.Fatalf("GetWarnings() returned %d warnings, want 5", len(warnings))
	}
	for i, w := range warnings {
		if w.WarningID != i+1 {
			t.Errorf("warnings[%d].WarningID = %d, want %d", i, w.WarningID, i+1)
		}
	}
}

func TestClearWarningsRestartsNumbering(t *testing.T) {
	s := newTestStore(t)

	s.AddWarning(100, 200, "uno")
	s.AddWarning(100, 200, "dos")

	if err := s.ClearWarnings(100); err != nil {
		t.Fatalf("ClearWarnings() returned error: %v", err)
	}
	if got := s.GetWarnings(100); len(got) != 0 {
		t.Fatalf("GetWarnings() after clear returned %d warnings, want 0", len(got))
	}

	w, err := s.AddWarning(100, 200, "tres")
	if err != nil {
		t.Fatalf("AddWarning() returned error: %v", err)
	}
	if w.WarningID != 1 {
		t.Errorf("WarningID after clear = %d, want 1", w.WarningID)
	}
}

func TestClearWarningsNoopDoesNotNotify(t *testing.T) {
	s := newTestStore(t)

	notified := 0
	s.RegisterObserver(func(event ChangeEvent) {
		notified++
	})

	if err := s.ClearWarnings(42); err != nil {
		t.Fatalf("ClearWarnings() returned error: %v", err)
	}
	if notified != 0 {
		t.Errorf("observer invoked %d times for no-op clear, want 0", notified)
	}
}

func TestAddMuteExpiresAt(t *testing.T) {
	s := newTestStore(t)

	mute, _, err := s.AddMute(1, 2, 300, "spam")
	if err != nil {
		t.Fatalf("AddMute() returned error: %v", err)
	}

	want := mute.Timestamp.Add(300 * time.Second)
	if !mute.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", mute.ExpiresAt, want)
	}

	got, ok := s.GetMute(1)
	if !ok {
		t.Fatal("GetMute() returned absent, want present")
	}
	if got.Duration != 300 {
		t.Errorf("Duration = %d, want 300", got.Duration)
	}
}

func TestAddMuteOverwrites(t *testing.T) {
	s := newTestStore(t)

	s.AddMute(1, 2, 60, "primero")
	_, gen2, _ := s.AddMute(1, 3, 120, "segundo")

	mute, ok := s.GetMute(1)
	if !ok {
		t.Fatal("GetMute() returned absent, want present")
	}
	if mute.ModeratorID != 3 || mute.Duration != 120 || mute.Reason != "segundo" {
		t.Errorf("GetMute() = %+v, want overwrite by second mute", mute)
	}
	if gen2 != 2 {
		t.Errorf("second mute generation = %d, want 2", gen2)
	}
}

func TestRemoveMuteBumpsGeneration(t *testing.T) {
	s := newTestStore(t)

	_, gen, _ := s.AddMute(1, 2, 60, "spam")
	if err := s.RemoveMute(1); err != nil {
		t.Fatalf("RemoveMute() returned error: %v", err)
	}
	if _, ok := s.GetMute(1); ok {
		t.Error("GetMute() returned present after RemoveMute")
	}
	if got := s.MuteGeneration(1); got == gen {
		t.Errorf("MuteGeneration() = %d after remove, want bumped past %d", got, gen)
	}
}

func TestAddBanOverwrites(t *testing.T) {
	s := newTestStore(t)

	s.AddBan(1, 2, "x")
	s.AddBan(1, 3, "y")

	ban, ok := s.GetBan(1)
	if !ok {
		t.Fatal("GetBan() returned absent, want present")
	}
	if ban.ModeratorID != 3 || ban.Reason != "y" {
		t.Errorf("GetBan() = %+v, want record from second AddBan", ban)
	}

	if err := s.RemoveBan(1); err != nil {
		t.Fatalf("RemoveBan() returned error: %v", err)
	}
	if _, ok := s.GetBan(1); ok {
		t.Error("GetBan() returned present after RemoveBan")
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)

	s.AddWarning(1, 9, "a")
	s.AddWarning(1, 9, "b")
	s.AddWarning(2, 9, "c")
	s.AddMute(3, 9, 600, "spam")
	s.AddBan(4, 9, "raid")
	s.LogKick(5, 9, "flood")
	s.LogKick(5, 9, "flood de nuevo")

	stats := s.Stats()
	if stats.TotalWarnings != 3 {
		t.Errorf("TotalWarnings = %d, want 3", stats.TotalWarnings)
	}
	if stats.TotalUsersWarned != 2 {
		t.Errorf("TotalUsersWarned = %d, want 2", stats.TotalUsersWarned)
	}
	if stats.ActiveMutes != 1 {
		t.Errorf("ActiveMutes = %d, want 1", stats.ActiveMutes)
	}
	if stats.TotalBans != 1 {
		t.Errorf("TotalBans = %d, want 1", stats.TotalBans)
	}
	if stats.TotalKicks != 2 {
		t.Errorf("TotalKicks = %d, want 2", stats.TotalKicks)
	}
}

func TestStatsExcludesExpiredMutes(t *testing.T) {
	s := newTestStore(t)

	s.AddMute(1, 2, 300, "spam")
	if got := s.Stats().ActiveMutes; got != 1 {
		t.Fatalf("ActiveMutes = %d, want 1", got)
	}

	// Adelantar el reloj más allá de expires_at sin disparar el scheduler.
	s.nowFunc = func() time.Time {
		return time.Now().Add(301 * time.Second)
	}
	if got := s.Stats().ActiveMutes; got != 0 {
		t.Errorf("ActiveMutes after expiry = %d, want 0", got)
	}
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "moderation_data.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}

	s.AddWarning(100, 200, "spam")
	s.AddWarning(100, 200, "flood")
	s.AddWarning(101, 200, "otro")
	s.AddMute(100, 200, 300, "silencio")
	s.AddBan(102, 200, "baneado")
	s.LogKick(103, 200, "expulsado")

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("Open() on existing file returned error: %v", err)
	}

	origWarnings := s.GetWarnings(100)
	gotWarnings := reloaded.GetWarnings(100)
	if len(gotWarnings) != len(origWarnings) {
		t.Fatalf("reloaded warnings = %d, want %d", len(gotWarnings), len(origWarnings))
	}
	for i := range origWarnings {
		if gotWarnings[i].WarningID != origWarnings[i].WarningID ||
			gotWarnings[i].Reason != origWarnings[i].Reason ||
			gotWarnings[i].ModeratorID != origWarnings[i].ModeratorID ||
			!gotWarnings[i].Timestamp.Equal(origWarnings[i].Timestamp) {
			t.Errorf("reloaded warning %d = %+v, want %+v", i, gotWarnings[i], origWarnings[i])
		}
	}

	origMute, _ := s.GetMute(100)
	gotMute, ok := reloaded.GetMute(100)
	if !ok {
		t.Fatal("reloaded GetMute() returned absent, want present")
	}
	if gotMute.Duration != origMute.Duration || !gotMute.ExpiresAt.Equal(origMute.ExpiresAt) ||
		gotMute.Reason != origMute.Reason || gotMute.ModeratorID != origMute.ModeratorID {
		t.Errorf("reloaded mute = %+v, want %+v", gotMute, origMute)
	}

	origBan, _ := s.GetBan(102)
	gotBan, ok := reloaded.GetBan(102)
	if !ok {
		t.Fatal("reloaded GetBan() returned absent, want present")
	}
	if gotBan.Reason != origBan.Reason || !gotBan.Timestamp.Equal(origBan.Timestamp) {
		t.Errorf("reloaded ban = %+v, want %+v", gotBan, origBan)
	}

	if got, want := reloaded.Stats().TotalKicks, s.Stats().TotalKicks; got != want {
		t.Errorf("reloaded kick log length = %d, want %d", got, want)
	}
}

func TestFileSchemaKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "moderation_data.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	s.AddWarning(123456789, 987654321, "test")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() returned error: %v", err)
	}
	content := string(raw)
	for _, key := range []string{`"warnings"`, `"mutes"`, `"bans"`, `"kick_log"`, `"123456789"`, `"warning_id"`, `"moderator_id"`} {
		if !contains(content, key) {
			t.Errorf("data file missing expected key %s", key)
		}
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

func TestObserversOrderAndPanicContainment(t *testing.T) {
	s := newTestStore(t)

	var order []string
	s.RegisterObserver(func(event ChangeEvent) {
		order = append(order, "primero")
		panic("observer roto")
	})
	s.RegisterObserver(func(event ChangeEvent) {
		order = append(order, "segundo")
	})

	if _, err := s.AddWarning(1, 2, "spam"); err != nil {
		t.Fatalf("AddWarning() returned error: %v", err)
	}

	if len(order) != 2 || order[0] != "primero" || order[1] != "segundo" {
		t.Errorf("observer order = %v, want [primero segundo]", order)
	}
}

func TestObserverReceivesEventType(t *testing.T) {
	s := newTestStore(t)

	var events []string
	s.RegisterObserver(func(event ChangeEvent) {
		events = append(events, event.Type)
	})

	s.AddWarning(1, 2, "a")
	s.AddMute(1, 2, 60, "b")
	s.RemoveMute(1)
	s.AddBan(1, 2, "c")
	s.RemoveBan(1)
	s.LogKick(1, 2, "d")
	s.ClearWarnings(1)

	want := []string{
		EventWarningAdded, EventMuteAdded, EventMuteRemoved,
		EventBanAdded, EventBanRemoved, EventKickLogged, EventWarningsCleared,
	}
	if len(events) != len(want) {
		t.Fatalf("received %d events, want %d: %v", len(events), len(want), events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %s, want %s", i, events[i], want[i])
		}
	}
}

func TestSaveFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "moderation_data.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}

	// Convertir la ruta de datos en un directorio hace fallar el rename.
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatalf("Mkdir() returned error: %v", err)
	}

	if _, err := s.AddWarning(1, 2, "spam"); err == nil {
		t.Error("AddWarning() with unwritable data file returned nil error, want error")
	}

	// La memoria queda por delante del disco: la advertencia existe en memoria.
	if got := s.GetWarnings(1); len(got) != 1 {
		t.Errorf("in-memory warnings after failed save = %d, want 1", len(got))
	}
}
