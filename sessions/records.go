package sessions

import (
	"log/slog"
	"path/filepath"

	"github.com/quailykeep/recall/internal/fsstore"
	"github.com/quailykeep/recall/internal/pathutil"
)

// Loader resolves matched metadata to full session records on disk.
// Root bounds every resolved path; SessionsDir is where records without
// an explicit location are expected, as <session_id>.json.
type Loader struct {
	Root        string
	SessionsDir string
	logger      *slog.Logger
}

func NewLoader(root, sessionsDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{Root: root, SessionsDir: sessionsDir, logger: logger}
}

// LoadRecords resolves each matched metadata entry to its full record,
// preserving input order. Every per-record failure degrades that one
// record to its metadata stand-in; a bad record never blocks the rest.
// A location resolving outside Root is treated as a traversal attempt:
// blocked, logged, degraded, and never read.
func (l *Loader) LoadRecords(matched []Metadata) []Record {
	out := make([]Record, 0, len(matched))
	for _, meta := range matched {
		out = append(out, l.loadOne(meta))
	}
	return out
}

func (l *Loader) loadOne(meta Metadata) Record {
	path := meta.Location
	if path == "" {
		path = filepath.Join(l.SessionsDir, meta.ID+".json")
	}
	abs, ok := pathutil.WithinRoot(l.Root, path)
	if !ok {
		l.logger.Warn("session record path escapes project root, blocked",
			"session_id", meta.ID, "location", meta.Location)
		return degradedRecord(meta)
	}

	var content map[string]any
	found, err := fsstore.ReadJSON(abs, &content)
	if err != nil {
		l.logger.Warn("session record unreadable, using metadata stand-in",
			"session_id", meta.ID, "path", abs, "error", err)
		return degradedRecord(meta)
	}
	if !found {
		l.logger.Debug("session record missing, using metadata stand-in",
			"session_id", meta.ID, "path", abs)
		return degradedRecord(meta)
	}
	return Record{ID: meta.ID, Content: content}
}
