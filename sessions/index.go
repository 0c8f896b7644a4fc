package sessions

import (
	"log/slog"
	"strings"

	"github.com/quailykeep/recall/internal/fsstore"
)

// Index is the canonical, already-deduplicated view over the persisted
// session index. The on-disk file comes in two shapes: the current
// dual-partition form ({"indices": {"recent": ..., "important": ...}})
// and a legacy flat list ({"sessions": [...]}). Shape is resolved once
// here; nothing downstream branches on it again.
type Index struct {
	recent    []Metadata
	important []Metadata
	Legacy    bool
}

type rawSession struct {
	ID             string   `json:"session_id"`
	Date           string   `json:"date"`
	Keywords       []string `json:"keywords"`
	Topics         []string `json:"key_topics"`
	SummaryCompact string   `json:"summary_compact"`
	Summary        string   `json:"summary"`
	ImportanceRank *int     `json:"importance_rank"`
	Location       string   `json:"file_path"`
}

type rawPartition struct {
	Sessions []rawSession `json:"sessions"`
}

type rawIndexFile struct {
	Indices *struct {
		Recent    rawPartition `json:"recent"`
		Important rawPartition `json:"important"`
	} `json:"indices"`
	Sessions []rawSession `json:"sessions"`
}

// LoadIndex reads the session index at path. It fails soft: a missing
// or unparseable file yields ok=false and an empty index, never an
// error, so the pipeline degrades to "no matches" instead of crashing.
func LoadIndex(path string, logger *slog.Logger) (Index, bool) {
	if logger == nil {
		logger = slog.Default()
	}
	var raw rawIndexFile
	found, err := fsstore.ReadJSON(path, &raw)
	if err != nil {
		logger.Warn("session index unreadable", "path", path, "error", err)
		return Index{}, false
	}
	if !found {
		logger.Debug("session index missing", "path", path)
		return Index{}, false
	}

	if raw.Indices != nil {
		idx := Index{
			recent:    projectSessions(raw.Indices.Recent.Sessions, 0),
			important: projectSessions(raw.Indices.Important.Sessions, len(raw.Indices.Recent.Sessions)),
		}
		return idx, true
	}
	if len(raw.Sessions) > 0 {
		all := projectSessions(raw.Sessions, 0)
		return Index{recent: all, important: nil, Legacy: true}, true
	}
	logger.Debug("session index empty", "path", path)
	return Index{}, false
}

// Narrow is the cheap, date-restricted partition tried first by the
// cascading search (the recent sessions, or everything for a legacy
// index).
func (idx Index) Narrow() []Metadata {
	return dedupeByID(idx.recent)
}

// Wide is the full partition: recent and important concatenated, first
// occurrence of each id kept.
func (idx Index) Wide() []Metadata {
	combined := make([]Metadata, 0, len(idx.recent)+len(idx.important))
	combined = append(combined, idx.recent...)
	combined = append(combined, idx.important...)
	return dedupeByID(combined)
}

func projectSessions(raw []rawSession, rankOffset int) []Metadata {
	out := make([]Metadata, 0, len(raw))
	for i, r := range raw {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			continue
		}
		rank := rankOffset + i + 1
		if r.ImportanceRank != nil {
			rank = *r.ImportanceRank
		}
		summary := strings.TrimSpace(r.SummaryCompact)
		if summary == "" {
			summary = truncateSummary(strings.TrimSpace(r.Summary), summaryCompactMaxChars)
		}
		out = append(out, Metadata{
			ID:             id,
			Date:           strings.TrimSpace(r.Date),
			Keywords:       r.Keywords,
			Topics:         r.Topics,
			SummaryCompact: summary,
			ImportanceRank: rank,
			Location:       strings.TrimSpace(r.Location),
		})
	}
	return out
}

func dedupeByID(items []Metadata) []Metadata {
	seen := make(map[string]bool, len(items))
	out := make([]Metadata, 0, len(items))
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out
}

func truncateSummary(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := s[:max]
	// Avoid splitting a multi-byte rune at the boundary.
	for len(cut) > 0 && cut[len(cut)-1] >= 0x80 && cut[len(cut)-1] < 0xC0 {
		cut = cut[:len(cut)-1]
	}
	if len(cut) > 0 && cut[len(cut)-1] >= 0xC0 {
		cut = cut[:len(cut)-1]
	}
	return cut
}
