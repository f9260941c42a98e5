package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/rigidbox/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func summary(scene string, ticks uint64, contacts int) core.RunSummary {
	return core.RunSummary{
		SceneID:     scene,
		Seed:        42,
		Ticks:       ticks,
		Bodies:      3,
		Contacts:    contacts,
		EnergyStart: 100,
		EnergyEnd:   80,
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(SourceTUI, summary("drop", 100, 5), 2*time.Second); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(SourceHeadless, summary("drop", 200, 7), 0); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	corrupt := summary("stack", 50, 1)
	corrupt.Corrupted = true
	if _, err := store.SaveRun(SourceSSH, corrupt, time.Second); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns("drop", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 drop runs, got %d", len(runs))
	}

	// Newest first
	if runs[0].Ticks != 200 || runs[0].Source != SourceHeadless {
		t.Errorf("Unexpected newest run: %+v", runs[0])
	}
	if runs[1].Duration != 2*time.Second {
		t.Errorf("Expected duration 2s, got %v", runs[1].Duration)
	}
	if runs[1].Seed != 42 || runs[1].Bodies != 3 || runs[1].EnergyEnd != 80 {
		t.Errorf("Summary fields not round-tripped: %+v", runs[1])
	}
	if runs[1].CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 runs overall, got %d", len(all))
	}
	if !all[0].Corrupted || all[0].SceneID != "stack" {
		t.Errorf("Expected corrupted stack run first, got %+v", all[0])
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(SourceTUI, summary("rain", uint64(i+1), 0), 0)
	}

	runs, err := store.RecentRuns("rain", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Ticks != 5 || runs[1].Ticks != 4 || runs[2].Ticks != 3 {
		t.Errorf("Runs not in expected order: %+v", runs)
	}
}

func TestStoreSceneStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.SceneStats("drop")
	if err != nil {
		t.Fatalf("SceneStats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastRun.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveRun(SourceTUI, summary("drop", 100, 5), 0)
	store.SaveRun(SourceTUI, summary("drop", 300, 10), 0)

	stats, err = store.SceneStats("drop")
	if err != nil {
		t.Fatalf("SceneStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.TotalTicks != 400 || stats.TotalContacts != 15 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.LastRun.IsZero() {
		t.Error("Expected last run time")
	}
}

func TestStoreAllSceneStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(SourceTUI, summary("drop", 100, 5), 0)
	corrupt := summary("tumble", 10, 0)
	corrupt.Corrupted = true
	store.SaveRun(SourceTUI, corrupt, 0)

	stats, err := store.AllSceneStats()
	if err != nil {
		t.Fatalf("AllSceneStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 scenes, got %d", len(stats))
	}
	if stats["tumble"].Corrupted != 1 {
		t.Errorf("Expected 1 corrupted tumble run, got %d", stats["tumble"].Corrupted)
	}
	if stats["drop"].TotalTicks != 100 {
		t.Errorf("Expected 100 drop ticks, got %d", stats["drop"].TotalTicks)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(SourceTUI, summary("drop", 1, 0), 0)
	store.SaveRun(SourceTUI, summary("stack", 1, 0), 0)

	if err := store.ClearRuns("drop"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	drop, _ := store.RecentRuns("drop", 10)
	if len(drop) != 0 {
		t.Errorf("Expected 0 drop runs after clear, got %d", len(drop))
	}
	stack, _ := store.RecentRuns("stack", 10)
	if len(stack) != 1 {
		t.Errorf("Stack runs should not be affected by clearing drop")
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	if got := parseTime(want); !got.Equal(want) {
		t.Errorf("parseTime(time.Time) = %v", got)
	}
	if got := parseTime("2024-03-01 12:30:00"); !got.Equal(want) {
		t.Errorf("parseTime(string) = %v", got)
	}
	if got := parseTime(nil); !got.IsZero() {
		t.Errorf("parseTime(nil) = %v, want zero", got)
	}
}
