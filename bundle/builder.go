package bundle

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quailykeep/recall/search"
	"github.com/quailykeep/recall/sessions"
)

// Config wires the builder to its inputs and output. Paths are explicit
// rather than resolved internally so tests and embedders can point the
// pipeline anywhere.
type Config struct {
	ProjectRoot  string
	IndexPath    string
	SessionsDir  string
	SnapshotPath string
	LessonsPath  string
	ProjectPath  string
	ProfilePath  string

	Threshold  float64
	MaxResults int
	TTLSeconds int
	Cascade    bool
}

// Builder runs the whole pipeline: tokenize the query, search the
// metadata index (cascading or single pass), resolve the matched full
// records, gather auxiliary context, and write the TTL snapshot.
type Builder struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

func NewBuilder(cfg Config, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = search.DefaultThreshold
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = search.DefaultMaxResults
	}
	if cfg.TTLSeconds <= 0 {
		cfg.TTLSeconds = DefaultTTLSeconds
	}
	if cfg.ProjectRoot == "" {
		cfg.ProjectRoot = cfg.SessionsDir
	}
	return &Builder{cfg: cfg, logger: logger, now: time.Now}
}

// Build answers the query and writes the snapshot. Every input failure
// degrades (empty index, degraded records, unavailable aux sections);
// the only fatal error is failing to write the snapshot itself.
func (b *Builder) Build(query string) (Snapshot, error) {
	snap := b.Assemble(query)
	if err := WriteSnapshot(b.cfg.SnapshotPath, snap); err != nil {
		return Snapshot{}, fmt.Errorf("write snapshot: %w", err)
	}
	b.logger.Info("memory bundle written",
		"path", b.cfg.SnapshotPath,
		"mode", snap.Mode,
		"layer", snap.SearchResult.Layer,
		"matched", snap.MatchedCount,
		"ttl_seconds", snap.TTLSeconds)
	return snap, nil
}

// Assemble produces the snapshot without writing it, for callers that
// only want the result object.
func (b *Builder) Assemble(query string) Snapshot {
	keywords := search.Tokenize(query)

	idx, available := sessions.LoadIndex(b.cfg.IndexPath, b.logger)
	mode := ModeSelective
	if idx.Legacy {
		mode = ModeLegacy
	}

	ctl := search.NewController(b.cfg.Cascade, b.cfg.Threshold, b.cfg.MaxResults, b.logger)
	var result search.Result
	var matched []search.Scored
	if available {
		result, matched = ctl.Run(query, keywords, idx)
	} else {
		result = search.Result{
			Query:         query,
			Keywords:      keywords,
			Reason:        "session index unavailable",
			Layer:         search.LayerNone,
			NeedsFallback: true,
		}
	}

	metas := make([]sessions.Metadata, 0, len(matched))
	for _, m := range matched {
		metas = append(metas, m.Meta)
	}
	loader := sessions.NewLoader(b.cfg.ProjectRoot, b.cfg.SessionsDir, b.logger)
	records := loader.LoadRecords(metas)

	return Snapshot{
		BundleID:     uuid.NewString(),
		CreatedAt:    b.now().UTC(),
		TTLSeconds:   b.cfg.TTLSeconds,
		Mode:         mode,
		Keywords:     keywords,
		SearchResult: result,
		MatchedCount: len(records),
		Sessions:     records,
		Auxiliary: AuxContext{
			Lessons:    loadLessons(b.cfg.LessonsPath, b.logger),
			Project:    loadDoc(b.cfg.ProjectPath, "project brief", b.logger),
			Adaptation: loadDoc(b.cfg.ProfilePath, "adaptation profile", b.logger),
		},
	}
}
