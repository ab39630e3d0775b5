package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9100
paths:
  data: ./reviews.csv
scoring:
  similarity_weight: 0.6
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("explicit port overridden: %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: %q", cfg.Server.Host)
	}
	if cfg.Scoring.SimilarityWeight != 0.6 {
		t.Errorf("explicit weight overridden: %v", cfg.Scoring.SimilarityWeight)
	}
	if cfg.Scoring.CategoryWeight != 0.2 {
		t.Errorf("default category weight: %v", cfg.Scoring.CategoryWeight)
	}
	if cfg.Training.TFIDFMaxFeatures != 1000 || cfg.Training.NClusters != 5 {
		t.Errorf("training defaults: %+v", cfg.Training)
	}
	if cfg.Training.Seed != 42 {
		t.Errorf("default seed: %d", cfg.Training.Seed)
	}
	if cfg.Model.Name == "" || cfg.Model.Version == "" {
		t.Errorf("model defaults: %+v", cfg.Model)
	}
}

func TestLoadExpandsRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "paths:\n  data: ./data/reviews.csv\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := filepath.Join(dir, "data/reviews.csv")
	if cfg.Paths.Data != want {
		t.Errorf("got %q, want %q", cfg.Paths.Data, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server: [broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Server.Port = 9999

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Server.Port != 9999 {
		t.Errorf("round-trip port: %d", loaded.Server.Port)
	}
}
