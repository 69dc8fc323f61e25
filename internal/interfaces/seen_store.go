package interfaces

import "context"

// SeenStore is the sole authority on which item identifiers have already
// been processed. It is the only state that persists across runs.
type SeenStore interface {
	// IsSeen reports whether the identifier has been recorded.
	IsSeen(ctx context.Context, id string) (bool, error)

	// MarkSeen records the identifier. Marking an already-seen id is a
	// no-op, not an error.
	MarkSeen(ctx context.Context, id string) error

	// SeenIDs returns every recorded identifier. Malformed entries
	// (missing the identifier field) are excluded.
	SeenIDs(ctx context.Context) ([]string, error)

	// Purge deletes malformed entries and returns how many were removed.
	Purge(ctx context.Context) (int, error)
}
