package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestBestEmpty(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Best(context.Background()); !errors.Is(err, ErrNoGames) {
		t.Fatalf("expected ErrNoGames, got %v", err)
	}
}

func TestSaveAndBest(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	records := []Record{
		{FinishedAt: base, Score: 12, Rounds: 20, Hits: 12, Misses: 8, BestReaction: 180 * time.Millisecond, MeanReaction: 320 * time.Millisecond},
		{FinishedAt: base.Add(time.Hour), Score: 25, Rounds: 30, Hits: 25, Misses: 5, BestReaction: 150 * time.Millisecond, MeanReaction: 260 * time.Millisecond},
		{FinishedAt: base.Add(2 * time.Hour), Score: 25, Rounds: 28, Hits: 25, Misses: 3},
	}
	for _, rec := range records {
		if err := store.Save(ctx, rec); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	best, err := store.Best(ctx)
	if err != nil {
		t.Fatalf("best: %v", err)
	}
	if best.Score != 25 || !best.FinishedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("expected earliest 25-point game, got %+v", best)
	}
	if best.BestReaction != 150*time.Millisecond || best.MeanReaction != 260*time.Millisecond {
		t.Fatalf("unexpected reactions: %+v", best)
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || !recent[0].FinishedAt.Equal(base.Add(2*time.Hour)) {
		t.Fatalf("expected newest first, got %+v", recent)
	}
}

func TestSaveRejectsInconsistentRecord(t *testing.T) {
	store := openTestStore(t)

	err := store.Save(context.Background(), Record{Score: 3, Rounds: 2, Hits: 3})
	if err == nil {
		t.Fatal("expected error for more hits than rounds")
	}
}

func TestSaveHonorsCanceledContext(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Save(ctx, Record{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRecentRequiresLimit(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Recent(context.Background(), 0); err == nil {
		t.Fatal("expected error for zero limit")
	}
}
