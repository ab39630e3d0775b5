// Package trainer fits the offline gradient-boosted ranking model over
// {cluster, rating, review_count} and persists it as a versioned artifact.
// The artifact is a standalone deliverable: the live recommender does not
// consult it.
package trainer

import (
	"encoding/json"
	"fmt"
	"os"
)

// FeatureNames are the model's input columns, in order.
var FeatureNames = []string{"cluster", "rating", "review_count"}

// treeNode is one node of a regression tree. Leaves carry Value; internal
// nodes route on Feature < Threshold.
type treeNode struct {
	Leaf      bool      `json:"leaf"`
	Value     float64   `json:"value,omitempty"`
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
}

func (n *treeNode) predict(features []float64) float64 {
	for !n.Leaf {
		if features[n.Feature] < n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

// RankerModel is a gradient-boosted ensemble of regression trees producing a
// scalar relevance estimate. Higher is more relevant; only the relative order
// of predictions is meaningful. Immutable once fit.
type RankerModel struct {
	Features     []string    `json:"features"`
	Base         float64     `json:"base_score"`
	LearningRate float64     `json:"learning_rate"`
	Trees        []*treeNode `json:"trees"`
}

// Predict returns the relevance estimate for one feature row, ordered as
// FeatureNames.
func (m *RankerModel) Predict(features []float64) float64 {
	score := m.Base
	for _, tree := range m.Trees {
		score += m.LearningRate * tree.predict(features)
	}
	return score
}

// Marshal serializes the model for persistence.
func (m *RankerModel) Marshal() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// LoadModel reads a persisted model artifact. A reloaded model predicts
// identically to the in-memory model it was saved from.
func LoadModel(path string) (*RankerModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}
	var m RankerModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}
	return &m, nil
}
