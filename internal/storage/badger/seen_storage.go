package badger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/gleaner/internal/interfaces"
	"github.com/ternarybob/gleaner/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// SeenStorage implements the SeenStore interface for Badger. Records are
// keyed by item URL; an entry existing at all means the item was processed.
type SeenStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.SeenStore = (*SeenStorage)(nil)

// NewSeenStorage creates a new SeenStorage instance
func NewSeenStorage(db *BadgerDB, logger arbor.ILogger) *SeenStorage {
	return &SeenStorage{
		db:     db,
		logger: logger,
	}
}

// normalizeID trims surrounding whitespace from an identifier. URLs are
// case-sensitive past the host, so no lowercasing here.
func (s *SeenStorage) normalizeID(id string) string {
	return strings.TrimSpace(id)
}

// IsSeen reports whether the identifier has been recorded.
func (s *SeenStorage) IsSeen(ctx context.Context, id string) (bool, error) {
	var item models.SeenItem
	err := s.db.Store().Get(s.normalizeID(id), &item)
	if err == badgerhold.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check seen status: %w", err)
	}
	// Self-heal guard: a stored entry without its URL field is malformed
	// and must not count as seen.
	if item.URL == "" {
		return false, nil
	}
	return true, nil
}

// MarkSeen records the identifier. Marking an already-seen id preserves its
// FirstSeen timestamp and is otherwise a no-op.
func (s *SeenStorage) MarkSeen(ctx context.Context, id string) error {
	normalized := s.normalizeID(id)

	item := models.SeenItem{
		URL:       normalized,
		FirstSeen: time.Now(),
	}

	var existing models.SeenItem
	err := s.db.Store().Get(normalized, &existing)
	if err == nil && existing.URL != "" {
		item.FirstSeen = existing.FirstSeen
	} else if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to check existing seen entry: %w", err)
	}

	if err := s.db.Store().Upsert(normalized, &item); err != nil {
		return fmt.Errorf("failed to mark seen: %w", err)
	}

	return nil
}

// SeenIDs returns every recorded identifier, excluding malformed entries.
func (s *SeenStorage) SeenIDs(ctx context.Context) ([]string, error) {
	var items []models.SeenItem
	err := s.db.Store().Find(&items, badgerhold.Where("URL").Ne(""))
	if err != nil {
		return nil, fmt.Errorf("failed to list seen entries: %w", err)
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.URL)
	}
	return ids, nil
}

// Purge deletes malformed entries (missing the URL field) and returns the
// number removed. Runs as a cleanup pass, never fails the caller on a
// single bad record.
func (s *SeenStorage) Purge(ctx context.Context) (int, error) {
	var malformed []models.SeenItem
	err := s.db.Store().Find(&malformed, badgerhold.Where("URL").Eq(""))
	if err != nil {
		return 0, fmt.Errorf("failed to scan for malformed entries: %w", err)
	}
	if len(malformed) == 0 {
		return 0, nil
	}

	if err := s.db.Store().DeleteMatching(&models.SeenItem{}, badgerhold.Where("URL").Eq("")); err != nil {
		return 0, fmt.Errorf("failed to purge malformed entries: %w", err)
	}

	s.logger.Info().Int("count", len(malformed)).Msg("Purged malformed seen entries")
	return len(malformed), nil
}
