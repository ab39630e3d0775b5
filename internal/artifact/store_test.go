package artifact

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveModelOverwrites(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, dir)

	path, err := store.SaveModel("food_ranker", "1", []byte(`{"v":1}`))
	if err != nil {
		t.Fatalf("SaveModel: %v", err)
	}
	if filepath.Base(path) != "food_ranker_v1.json" {
		t.Errorf("artifact name: %s", filepath.Base(path))
	}

	path2, err := store.SaveModel("food_ranker", "1", []byte(`{"v":2}`))
	if err != nil {
		t.Fatalf("SaveModel overwrite: %v", err)
	}
	if path2 != path {
		t.Errorf("same version should reuse the path: %s vs %s", path2, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"v":2}` {
		t.Errorf("artifact not overwritten: %s", data)
	}
}

func TestAppendRun(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, dir)

	for i := 0; i < 2; i++ {
		err := store.AppendRun(&RunEntry{
			Model:        "food_ranker",
			Version:      "1",
			ArtifactPath: "/tmp/x.json",
			Metrics:      map[string]float64{"val_rmse": 0.1},
		})
		if err != nil {
			t.Fatalf("AppendRun %d: %v", i, err)
		}
	}

	f, err := os.Open(filepath.Join(dir, "runs.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var entries []RunEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e RunEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("bad log line: %v", err)
		}
		entries = append(entries, e)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d log entries", len(entries))
	}
	if entries[0].RunID == "" || entries[0].RunID == entries[1].RunID {
		t.Error("run IDs should be unique and non-empty")
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}
