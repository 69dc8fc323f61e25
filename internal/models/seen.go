package models

import "time"

// SeenItem records one processed item identifier in the dedup store.
// Entries with an empty URL are malformed and get purged, never surfaced.
// The store key is the URL, passed explicitly on every call; the field
// deliberately carries no badgerhold key tag so a decoded entry reflects
// exactly what was stored and a missing URL stays detectable.
type SeenItem struct {
	URL       string    `json:"url"`
	FirstSeen time.Time `json:"first_seen"`
}
