// Package artifact persists trained model files and an append-only
// experiment run log.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Store writes versioned model artifacts under Dir and appends run entries
// to a JSONL log under LogDir.
type Store struct {
	Dir    string
	LogDir string
}

// NewStore creates a store rooted at dir with run logs under logDir.
func NewStore(dir, logDir string) *Store {
	return &Store{Dir: dir, LogDir: logDir}
}

// ModelPath returns the artifact path for a model name and version.
func (s *Store) ModelPath(name, version string) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s_v%s.json", name, version))
}

// SaveModel writes payload to the versioned artifact path, overwriting any
// existing artifact at that path, and returns the path.
func (s *Store) SaveModel(name, version string, payload []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}
	path := s.ModelPath(name, version)
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return "", fmt.Errorf("failed to write model artifact: %w", err)
	}
	return path, nil
}

// RunEntry is one experiment-log record.
type RunEntry struct {
	RunID        string             `json:"run_id"`
	Model        string             `json:"model"`
	Version      string             `json:"version"`
	ArtifactPath string             `json:"artifact_path"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// AppendRun appends entry to the run log, assigning a run ID and timestamp
// when unset.
func (s *Store) AppendRun(entry *RunEntry) error {
	if entry.RunID == "" {
		entry.RunID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := os.MkdirAll(s.LogDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal run entry: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(s.LogDir, "runs.jsonl"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open run log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append run entry: %w", err)
	}
	return nil
}
