package fsstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadWriteJSONAtomic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "state.json")
	type payload struct {
		Name string `json:"name"`
	}
	in := payload{Name: "alpha"}
	if err := WriteJSONAtomic(path, in); err != nil {
		t.Fatalf("WriteJSONAtomic() error = %v", err)
	}

	var out payload
	found, err := ReadJSON(path, &out)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if !found {
		t.Fatalf("ReadJSON() found = false, want true")
	}
	if out != in {
		t.Fatalf("ReadJSON() = %+v, want %+v", out, in)
	}
}

func TestReadJSONMissingFile(t *testing.T) {
	t.Parallel()

	var out map[string]any
	found, err := ReadJSON(filepath.Join(t.TempDir(), "absent.json"), &out)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if found {
		t.Fatalf("ReadJSON() found = true, want false")
	}
}

func TestReadJSONEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	found, err := ReadJSON(path, &out)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if found {
		t.Fatalf("ReadJSON() found = true, want false")
	}
}

func TestReadJSONMalformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	_, err := ReadJSON(path, &out)
	if !errors.Is(err, ErrDecodeFailed) {
		t.Fatalf("ReadJSON() error = %v, want ErrDecodeFailed", err)
	}
}

func TestWriteJSONAtomicOverwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	if err := WriteJSONAtomic(path, map[string]string{"v": "one"}); err != nil {
		t.Fatalf("WriteJSONAtomic() error = %v", err)
	}
	if err := WriteJSONAtomic(path, map[string]string{"v": "two"}); err != nil {
		t.Fatalf("WriteJSONAtomic() error = %v", err)
	}
	var out map[string]string
	if _, err := ReadJSON(path, &out); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if out["v"] != "two" {
		t.Fatalf("overwrite kept %q, want %q", out["v"], "two")
	}
}

func TestEmptyPathRejected(t *testing.T) {
	t.Parallel()

	var out map[string]any
	if _, err := ReadJSON("  ", &out); !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("ReadJSON() error = %v, want ErrInvalidPath", err)
	}
	if err := WriteJSONAtomic("", map[string]string{}); !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("WriteJSONAtomic() error = %v, want ErrInvalidPath", err)
	}
}
