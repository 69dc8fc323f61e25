package badger

import (
	"context"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/gleaner/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

func newTestStorage(t *testing.T) *SeenStorage {
	t.Helper()

	tmpDir := t.TempDir()

	options := badgerhold.DefaultOptions
	options.Dir = tmpDir
	options.ValueDir = tmpDir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	db := &BadgerDB{store: store}
	return NewSeenStorage(db, arbor.NewLogger())
}

func TestMarkSeenAndIsSeen(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	id := "https://example.com/article-one/"

	seen, err := storage.IsSeen(ctx, id)
	if err != nil {
		t.Fatalf("IsSeen failed: %v", err)
	}
	if seen {
		t.Fatal("expected id to be unseen")
	}

	if err := storage.MarkSeen(ctx, id); err != nil {
		t.Fatalf("MarkSeen failed: %v", err)
	}

	seen, err = storage.IsSeen(ctx, id)
	if err != nil {
		t.Fatalf("IsSeen failed: %v", err)
	}
	if !seen {
		t.Fatal("expected id to be seen after MarkSeen")
	}
}

func TestMarkSeenIsIdempotent(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	id := "https://example.com/article-one/"

	if err := storage.MarkSeen(ctx, id); err != nil {
		t.Fatalf("first MarkSeen failed: %v", err)
	}

	var first models.SeenItem
	if err := storage.db.Store().Get(id, &first); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// Marking again is a no-op, not an error, and preserves FirstSeen.
	if err := storage.MarkSeen(ctx, id); err != nil {
		t.Fatalf("second MarkSeen failed: %v", err)
	}

	var second models.SeenItem
	if err := storage.db.Store().Get(id, &second); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !first.FirstSeen.Equal(second.FirstSeen) {
		t.Fatalf("FirstSeen changed on re-mark: %v != %v", first.FirstSeen, second.FirstSeen)
	}

	ids, err := storage.SeenIDs(ctx)
	if err != nil {
		t.Fatalf("SeenIDs failed: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected 1 seen id, got %d", len(ids))
	}
}

func TestMalformedEntriesExcludedAndPurged(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	if err := storage.MarkSeen(ctx, "https://example.com/good/"); err != nil {
		t.Fatalf("MarkSeen failed: %v", err)
	}

	// Inject a malformed entry missing its URL field.
	if err := storage.db.Store().Upsert("bad-key", &models.SeenItem{}); err != nil {
		t.Fatalf("failed to inject malformed entry: %v", err)
	}

	ids, err := storage.SeenIDs(ctx)
	if err != nil {
		t.Fatalf("SeenIDs failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "https://example.com/good/" {
		t.Fatalf("malformed entry leaked into SeenIDs: %v", ids)
	}

	seen, err := storage.IsSeen(ctx, "bad-key")
	if err != nil {
		t.Fatalf("IsSeen failed: %v", err)
	}
	if seen {
		t.Fatal("malformed entry must not count as seen")
	}

	purged, err := storage.Purge(ctx)
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged entry, got %d", purged)
	}

	// Purging again finds nothing.
	purged, err = storage.Purge(ctx)
	if err != nil {
		t.Fatalf("second Purge failed: %v", err)
	}
	if purged != 0 {
		t.Fatalf("expected 0 purged entries, got %d", purged)
	}
}
