package bundle

import (
	"time"

	"github.com/quailykeep/recall/internal/fsstore"
	"github.com/quailykeep/recall/search"
	"github.com/quailykeep/recall/sessions"
)

// Snapshot modes: selective when the dual-partition index produced the
// input, legacy when the flat single-index shape did.
const (
	ModeSelective = "selective"
	ModeLegacy    = "legacy"
)

const DefaultTTLSeconds = 3600

// Snapshot is the one cached artifact this system produces per
// invocation: the matched full records plus everything the downstream
// consumer needs so it never re-reads the raw indices within the TTL
// window. Written once, overwritten unconditionally on the next run;
// consumers must treat it as advisory and re-derive when stale.
type Snapshot struct {
	BundleID     string            `json:"bundle_id"`
	CreatedAt    time.Time         `json:"created_at"`
	TTLSeconds   int               `json:"ttl_seconds"`
	Mode         string            `json:"mode"`
	Keywords     []string          `json:"keywords_extracted"`
	SearchResult search.Result     `json:"search_result"`
	MatchedCount int               `json:"matched_count"`
	Sessions     []sessions.Record `json:"matched_sessions"`
	Auxiliary    AuxContext        `json:"auxiliary_context"`
}

// IsStale reports whether the snapshot's TTL window has passed. A zero
// CreatedAt counts as stale.
func (s Snapshot) IsStale(now time.Time) bool {
	if s.CreatedAt.IsZero() {
		return true
	}
	ttl := s.TTLSeconds
	if ttl <= 0 {
		ttl = DefaultTTLSeconds
	}
	return now.After(s.CreatedAt.Add(time.Duration(ttl) * time.Second))
}

// WriteSnapshot replaces any prior snapshot at path. No merge, no
// versioning; last writer wins.
func WriteSnapshot(path string, s Snapshot) error {
	return fsstore.WriteJSONAtomic(path, s)
}

// ReadSnapshot loads a previously written snapshot for a downstream
// consumer. ok is false when none exists or it cannot be parsed.
func ReadSnapshot(path string) (Snapshot, bool) {
	var s Snapshot
	found, err := fsstore.ReadJSON(path, &s)
	if err != nil || !found {
		return Snapshot{}, false
	}
	return s, true
}
