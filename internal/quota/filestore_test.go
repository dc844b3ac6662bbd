package quota

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".quota_usage.json")
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(tempStorePath(t))

	used, err := store.Usage(ctx, "2026-09-01", "youtube")
	if err != nil {
		t.Fatalf("Usage on missing file: %v", err)
	}
	if used != 0 {
		t.Fatalf("Usage = %d on missing file, want 0", used)
	}

	for i := 0; i < 3; i++ {
		if err := store.Increment(ctx, "2026-09-01", "youtube"); err != nil {
			t.Fatalf("Increment: %v", err)
		}
	}
	if err := store.Increment(ctx, "2026-09-01", "reddit"); err != nil {
		t.Fatalf("Increment: %v", err)
	}

	used, err = store.Usage(ctx, "2026-09-01", "youtube")
	if err != nil {
		t.Fatalf("Usage: %v", err)
	}
	if used != 3 {
		t.Errorf("youtube usage = %d, want 3", used)
	}

	used, _ = store.Usage(ctx, "2026-09-01", "reddit")
	if used != 1 {
		t.Errorf("reddit usage = %d, want 1", used)
	}
}

func TestFileStorePurgesStaleDates(t *testing.T) {
	ctx := context.Background()
	path := tempStorePath(t)

	seed := map[string]map[string]int{
		"2026-08-30": {"youtube": 40},
		"2026-08-31": {"youtube": 12},
	}
	data, err := json.Marshal(seed)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	used, err := store.Usage(ctx, "2026-09-01", "youtube")
	if err != nil {
		t.Fatalf("Usage: %v", err)
	}
	if used != 0 {
		t.Errorf("usage = %d after date change, want 0", used)
	}

	// The stale keys are gone from the file itself.
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var onDisk map[string]map[string]int
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatal(err)
	}
	if len(onDisk) != 0 {
		t.Errorf("file still holds %d stale date keys: %v", len(onDisk), onDisk)
	}
}

func TestFileStoreTreatsCorruptFileAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := tempStorePath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	used, err := store.Usage(ctx, "2026-09-01", "youtube")
	if err != nil {
		t.Fatalf("Usage on corrupt file: %v", err)
	}
	if used != 0 {
		t.Errorf("usage = %d on corrupt file, want 0", used)
	}

	// And writes recover it to valid JSON.
	if err := store.Increment(ctx, "2026-09-01", "youtube"); err != nil {
		t.Fatalf("Increment: %v", err)
	}
	used, _ = store.Usage(ctx, "2026-09-01", "youtube")
	if used != 1 {
		t.Errorf("usage = %d after recovery, want 1", used)
	}
}
