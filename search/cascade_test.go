package search

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/quailykeep/recall/sessions"
)

func buildIndex(t *testing.T, recent, important []sessions.Metadata) sessions.Index {
	t.Helper()
	type part struct {
		Sessions []sessions.Metadata `json:"sessions"`
	}
	doc := map[string]any{
		"indices": map[string]any{
			"recent":    part{Sessions: recent},
			"important": part{Sessions: important},
		},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "session_index.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	idx, ok := sessions.LoadIndex(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if !ok {
		t.Fatalf("LoadIndex() ok = false")
	}
	return idx
}

func TestCascadeHitNarrow(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t,
		[]sessions.Metadata{{ID: "recent1", Keywords: []string{"caching"}}},
		[]sessions.Metadata{{ID: "old1", Keywords: []string{"caching"}}},
	)
	ctl := NewController(true, 0.5, 5, nil)
	res, matched := ctl.Run("caching", []string{"caching"}, idx)
	if !res.Found {
		t.Fatalf("Run() found = false, want true")
	}
	if res.Layer != LayerNarrow {
		t.Fatalf("Layer = %q, want narrow", res.Layer)
	}
	if res.Cost != costNarrow {
		t.Fatalf("Cost = %d, want %d", res.Cost, costNarrow)
	}
	if len(matched) != 1 || matched[0].Meta.ID != "recent1" {
		t.Fatalf("matched = %v, want [recent1]", matched)
	}
}

func TestCascadeFallsBackToWide(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t,
		[]sessions.Metadata{{ID: "recent1", SummaryCompact: "nothing relevant"}},
		[]sessions.Metadata{{ID: "old1", Keywords: []string{"migration"}}},
	)
	ctl := NewController(true, 0.5, 5, nil)
	res, matched := ctl.Run("migration", []string{"migration"}, idx)
	if !res.Found {
		t.Fatalf("Run() found = false, want true")
	}
	if res.Layer != LayerWide {
		t.Fatalf("Layer = %q, want wide", res.Layer)
	}
	if res.Cost <= costNarrow {
		t.Fatalf("wide cost %d must exceed narrow cost %d", res.Cost, costNarrow)
	}
	if len(matched) != 1 || matched[0].Meta.ID != "old1" {
		t.Fatalf("matched = %v, want [old1]", matched)
	}
}

func TestCascadeMissBoth(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t,
		[]sessions.Metadata{{ID: "r1"}},
		[]sessions.Metadata{{ID: "i1"}},
	)
	ctl := NewController(true, 0.5, 5, nil)
	res, matched := ctl.Run("absent", []string{"absent"}, idx)
	if res.Found {
		t.Fatalf("Run() found = true, want false")
	}
	if res.Layer != LayerNone {
		t.Fatalf("Layer = %q, want none", res.Layer)
	}
	if !res.NeedsFallback {
		t.Fatalf("NeedsFallback = false, want true")
	}
	if len(matched) != 0 {
		t.Fatalf("matched = %v, want empty", matched)
	}
}

func TestSinglePassMode(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t,
		[]sessions.Metadata{{ID: "r1"}},
		[]sessions.Metadata{{ID: "i1", Keywords: []string{"deploy"}}},
	)
	ctl := NewController(false, 0.5, 5, nil)
	res, matched := ctl.Run("deploy", []string{"deploy"}, idx)
	if !res.Found {
		t.Fatalf("Run() found = false, want true")
	}
	if res.Layer != LayerSingle {
		t.Fatalf("Layer = %q, want single", res.Layer)
	}
	if len(matched) != 1 || matched[0].Meta.ID != "i1" {
		t.Fatalf("matched = %v, want [i1]", matched)
	}
}

func TestControllerDefaults(t *testing.T) {
	t.Parallel()

	ctl := NewController(true, 0, 0, nil)
	if ctl.Threshold != DefaultThreshold {
		t.Fatalf("Threshold = %v, want %v", ctl.Threshold, DefaultThreshold)
	}
	if ctl.MaxResults != DefaultMaxResults {
		t.Fatalf("MaxResults = %v, want %v", ctl.MaxResults, DefaultMaxResults)
	}
}
