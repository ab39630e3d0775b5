// Package config provides configuration loading and structs for the Osusume server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Paths    PathsConfig    `yaml:"paths"`
	Model    ModelConfig    `yaml:"model"`
	Training TrainingConfig `yaml:"training"`
	Scoring  ScoringConfig  `yaml:"scoring"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// PathsConfig holds dataset and artifact locations.
type PathsConfig struct {
	// Data is the dataset file: .csv, .xlsx, or a SQLite database (.db/.sqlite).
	Data string `yaml:"data"`
	// Artifacts is the directory trained model files are written to.
	Artifacts string `yaml:"model_artifacts"`
	// Logs is the directory for the experiment run log.
	Logs string `yaml:"logs"`
}

// ModelConfig names the trained ranking model artifact.
type ModelConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// TrainingConfig holds feature-pipeline and trainer settings.
type TrainingConfig struct {
	TFIDFMaxFeatures int           `yaml:"tfidf_max_features"`
	NClusters        int           `yaml:"n_clusters"`
	Seed             int64         `yaml:"seed"`
	Booster          BoosterConfig `yaml:"booster"`
}

// BoosterConfig holds gradient-boosting hyperparameters for the ranker.
type BoosterConfig struct {
	Rounds       int     `yaml:"rounds"`
	LearningRate float64 `yaml:"learning_rate"`
	MaxDepth     int     `yaml:"max_depth"`
}

// ScoringConfig holds the composite-score weights and the default result count.
// Weights are non-negative and need not sum to 1.
type ScoringConfig struct {
	SimilarityWeight float64 `yaml:"similarity_weight"`
	RatingWeight     float64 `yaml:"rating_weight"`
	RecencyWeight    float64 `yaml:"recency_weight"`
	CategoryWeight   float64 `yaml:"category_weight"`
	TopK             int     `yaml:"top_k"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Paths.Data = expandPath(cfg.Paths.Data, configDir)
	cfg.Paths.Artifacts = expandPath(cfg.Paths.Artifacts, configDir)
	cfg.Paths.Logs = expandPath(cfg.Paths.Logs, configDir)

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
