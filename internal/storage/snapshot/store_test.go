package snapshot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "records.json")
		store := NewFileStore(path)

		in := map[string]int64{"100": 42, "200": 7}
		if err := store.Save(in); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		out := make(map[string]int64)
		if err := store.Load(&out); err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if len(out) != 2 || out["100"] != 42 || out["200"] != 7 {
			t.Errorf("Load() = %v, want %v", out, in)
		}
	})

	t.Run("missing file leaves value untouched", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

		out := map[string]string{"seed": "kept"}
		if err := store.Load(&out); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if out["seed"] != "kept" {
			t.Errorf("Load() mutated value on missing file: %v", out)
		}
	})

	t.Run("save creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "deeper", "records.json")
		store := NewFileStore(path)

		if err := store.Save(map[string]string{"a": "b"}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected snapshot file to exist: %v", err)
		}
	})

	t.Run("save overwrites the whole document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "records.json")
		store := NewFileStore(path)

		if err := store.Save(map[string]string{"old": "entry", "other": "entry"}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if err := store.Save(map[string]string{"new": "entry"}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		out := make(map[string]string)
		if err := store.Load(&out); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(out) != 1 || out["new"] != "entry" {
			t.Errorf("Load() = %v, want only the last document", out)
		}
	})

	t.Run("corrupt file reports error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "records.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}

		out := make(map[string]string)
		if err := NewFileStore(path).Load(&out); err == nil {
			t.Error("Load() error = nil, want decode error")
		}
	})
}
