package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("ann", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("bob", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("ann", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Player != "ann" {
		t.Errorf("Player = %q, expected ann", scores[0].Player)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}

	bobScores, err := store.TopScores("bob", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(bobScores) != 1 {
		t.Errorf("Expected 1 score for bob, got %d", len(bobScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("ann", (i+1)*100)
	}

	scores, err := store.TopScores("ann", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("ann")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for new player, got %d", high)
	}

	store.SaveScore("ann", 100)
	store.SaveScore("ann", 300)
	store.SaveScore("ann", 200)

	high, err = store.HighScore("ann")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("ann", 100)
	store.SaveScore("ann", 200)
	store.SaveScore("bob", 300)

	if err := store.ClearScores("ann"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	annScores, _ := store.TopScores("ann", 10)
	if len(annScores) != 0 {
		t.Errorf("Expected 0 scores for ann after clear, got %d", len(annScores))
	}

	bobScores, _ := store.TopScores("bob", 10)
	if len(bobScores) != 1 {
		t.Errorf("bob's scores should not be affected by clearing ann")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("ann", i*10)
	}

	scores, err := store.AllScores("ann")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreRenamePlayer(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("ann", 40)
	store.SaveScore("ann", 90)
	store.SaveScore("Bob", 70)

	if err := store.RenamePlayer("ann", "Bob"); err != nil {
		t.Fatalf("RenamePlayer() failed: %v", err)
	}

	if scores, _ := store.AllScores("ann"); len(scores) != 0 {
		t.Errorf("ann still has %d scores", len(scores))
	}
	high, _ := store.HighScore("Bob")
	if high != 90 {
		t.Errorf("HighScore(Bob) = %d, expected 90", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("nobody")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.RunsCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Stats() for new player = %+v, expected zero values", empty)
	}

	store.SaveScore("ann", 10)
	store.SaveScore("ann", 30)

	stats, err := store.Stats("ann")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.RunsCount != 2 || stats.HighScore != 30 || stats.TotalScore != 40 || stats.AvgScore != 20 {
		t.Errorf("Stats() = %+v, expected 2 runs, best 30, total 40, avg 20", stats)
	}
}

func TestStoreKV(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, KeyPlayerName); err != nil || ok {
		t.Fatalf("Get() on empty store = ok %v, err %v", ok, err)
	}

	if err := store.Put(ctx, KeyPlayerName, "ann"); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store.Put(ctx, KeyPlayerName, "Bob"); err != nil {
		t.Fatalf("Put() overwrite failed: %v", err)
	}

	value, ok, err := store.Get(ctx, KeyPlayerName)
	if err != nil || !ok || value != "Bob" {
		t.Errorf("Get() = (%q, %v, %v), expected (Bob, true, nil)", value, ok, err)
	}

	if err := store.Delete(ctx, KeyPlayerName); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, KeyPlayerName); ok {
		t.Error("key still present after Delete()")
	}
	if err := store.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete() of missing key = %v, expected nil", err)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	store, err := Open("~/nested/deep/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	home, _ := os.UserHomeDir()
	if _, err := os.Stat(filepath.Join(home, "nested", "deep", "test.db")); os.IsNotExist(err) {
		t.Error("Database file was not created under the home directory")
	}
}
