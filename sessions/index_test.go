package sessions

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeIndex(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session_index.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadIndexDualPartitions(t *testing.T) {
	t.Parallel()

	path := writeIndex(t, `{
	  "indices": {
	    "recent": {"sessions": [
	      {"session_id": "s1", "date": "2026-08-01T10:00:00Z", "keywords": ["caching"], "key_topics": ["perf"], "summary_compact": "about caching layers"}
	    ]},
	    "important": {"sessions": [
	      {"session_id": "s2", "summary": "long discussion of deploy pipelines"}
	    ]}
	  }
	}`)

	idx, ok := LoadIndex(path, discardLogger())
	if !ok {
		t.Fatalf("LoadIndex() ok = false, want true")
	}
	if idx.Legacy {
		t.Fatalf("LoadIndex() Legacy = true, want false")
	}
	narrow := idx.Narrow()
	if len(narrow) != 1 || narrow[0].ID != "s1" {
		t.Fatalf("Narrow() = %+v, want [s1]", narrow)
	}
	wide := idx.Wide()
	if len(wide) != 2 || wide[0].ID != "s1" || wide[1].ID != "s2" {
		t.Fatalf("Wide() = %+v, want [s1 s2]", wide)
	}
	if wide[1].SummaryCompact != "long discussion of deploy pipelines" {
		t.Fatalf("summary projection = %q", wide[1].SummaryCompact)
	}
}

func TestLoadIndexDeduplicatesByID(t *testing.T) {
	t.Parallel()

	path := writeIndex(t, `{
	  "indices": {
	    "recent": {"sessions": [{"session_id": "s1", "summary_compact": "recent copy"}]},
	    "important": {"sessions": [{"session_id": "s1", "summary_compact": "important copy"}, {"session_id": "s2"}]}
	  }
	}`)

	idx, ok := LoadIndex(path, discardLogger())
	if !ok {
		t.Fatalf("LoadIndex() ok = false, want true")
	}
	wide := idx.Wide()
	if len(wide) != 2 {
		t.Fatalf("Wide() returned %d entries, want 2", len(wide))
	}
	// First occurrence wins.
	if wide[0].ID != "s1" || wide[0].SummaryCompact != "recent copy" {
		t.Fatalf("dedup kept %+v, want the recent copy of s1", wide[0])
	}
}

func TestLoadIndexLegacyShape(t *testing.T) {
	t.Parallel()

	path := writeIndex(t, `{"sessions": [{"session_id": "old1"}, {"session_id": "old2"}]}`)

	idx, ok := LoadIndex(path, discardLogger())
	if !ok {
		t.Fatalf("LoadIndex() ok = false, want true")
	}
	if !idx.Legacy {
		t.Fatalf("LoadIndex() Legacy = false, want true")
	}
	if got := len(idx.Wide()); got != 2 {
		t.Fatalf("Wide() returned %d entries, want 2", got)
	}
	if got := len(idx.Narrow()); got != 2 {
		t.Fatalf("Narrow() returned %d entries, want 2", got)
	}
}

func TestLoadIndexMissingFile(t *testing.T) {
	t.Parallel()

	idx, ok := LoadIndex(filepath.Join(t.TempDir(), "absent.json"), discardLogger())
	if ok {
		t.Fatalf("LoadIndex() ok = true, want false")
	}
	if len(idx.Wide()) != 0 {
		t.Fatalf("Wide() on unavailable index = %+v, want empty", idx.Wide())
	}
}

func TestLoadIndexMalformedFailsSoft(t *testing.T) {
	t.Parallel()

	path := writeIndex(t, "{broken")
	idx, ok := LoadIndex(path, discardLogger())
	if ok {
		t.Fatalf("LoadIndex() ok = true, want false")
	}
	if len(idx.Wide()) != 0 {
		t.Fatalf("Wide() on malformed index not empty")
	}
}

func TestProjectionAssignsRanksAndTruncates(t *testing.T) {
	t.Parallel()

	long := make([]byte, 0, 400)
	for i := 0; i < 400; i++ {
		long = append(long, 'a')
	}
	path := writeIndex(t, `{
	  "indices": {
	    "recent": {"sessions": [
	      {"session_id": "s1", "summary": "`+string(long)+`"},
	      {"session_id": "s2", "importance_rank": 99}
	    ]},
	    "important": {"sessions": []}
	  }
	}`)

	idx, ok := LoadIndex(path, discardLogger())
	if !ok {
		t.Fatalf("LoadIndex() ok = false, want true")
	}
	got := idx.Narrow()
	if len(got) != 2 {
		t.Fatalf("Narrow() returned %d entries, want 2", len(got))
	}
	if len(got[0].SummaryCompact) != 200 {
		t.Fatalf("summary truncated to %d chars, want 200", len(got[0].SummaryCompact))
	}
	if got[0].ImportanceRank != 1 {
		t.Fatalf("positional rank = %d, want 1", got[0].ImportanceRank)
	}
	if got[1].ImportanceRank != 99 {
		t.Fatalf("explicit rank = %d, want 99", got[1].ImportanceRank)
	}
}

func TestProjectionSkipsBlankIDs(t *testing.T) {
	t.Parallel()

	path := writeIndex(t, `{"sessions": [{"session_id": "  "}, {"session_id": "ok"}]}`)
	idx, ok := LoadIndex(path, discardLogger())
	if !ok {
		t.Fatalf("LoadIndex() ok = false, want true")
	}
	wide := idx.Wide()
	if len(wide) != 1 || wide[0].ID != "ok" {
		t.Fatalf("Wide() = %+v, want [ok]", wide)
	}
}
