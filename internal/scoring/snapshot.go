// Package scoring holds the fitted dataset snapshot and the composite-score
// recommender that serves ranked top-K results over it.
package scoring

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hyperjump/osusume/internal/cluster"
	"github.com/hyperjump/osusume/internal/config"
	"github.com/hyperjump/osusume/internal/feature"
	"github.com/hyperjump/osusume/internal/models"
	"github.com/hyperjump/osusume/internal/tfidf"
)

// Snapshot is the immutable result of fitting the feature pipeline over one
// dataset load: featurized records with cluster labels, the fitted
// vectorizer, and the document matrix in the same row order as Records.
// A snapshot is never mutated after Fit; reloads build a new one and swap it
// in through a Holder.
type Snapshot struct {
	Records    []models.FeaturizedRecord
	Vectorizer *tfidf.Vectorizer
	Matrix     [][]float64
	NClusters  int
	FittedAt   time.Time
}

// Fit runs the offline pipeline over raw records: impute missing review text,
// derive recency and combined text, fit the TF-IDF space over the combined
// texts, and assign cluster labels. now anchors the recency decay.
func Fit(records []models.Record, cfg *config.TrainingConfig, now time.Time) (*Snapshot, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("scoring: cannot fit on an empty dataset")
	}

	featurized := feature.Featurize(records, now)
	corpus := make([]string, len(featurized))
	for i, r := range featurized {
		corpus[i] = r.CombinedText
	}

	vectorizer := tfidf.NewVectorizer(cfg.TFIDFMaxFeatures)
	matrix := vectorizer.FitTransform(corpus)

	km := cluster.NewKMeans(cfg.NClusters, cfg.Seed)
	labels := km.FitPredict(matrix)
	for i := range featurized {
		featurized[i].Cluster = labels[i]
	}

	return &Snapshot{
		Records:    featurized,
		Vectorizer: vectorizer,
		Matrix:     matrix,
		NClusters:  cfg.NClusters,
		FittedAt:   now,
	}, nil
}

// Places returns the number of distinct place names in the snapshot.
func (s *Snapshot) Places() int {
	seen := make(map[string]bool)
	for _, r := range s.Records {
		seen[r.PlaceName] = true
	}
	return len(seen)
}

// Holder publishes the current snapshot to concurrent readers. Load returns
// the snapshot in effect at call time; Store atomically swaps in a new one.
// In-flight requests keep scoring against the snapshot they loaded.
type Holder struct {
	p atomic.Pointer[Snapshot]
}

// Load returns the current snapshot, or nil before the first Store.
func (h *Holder) Load() *Snapshot {
	return h.p.Load()
}

// Store swaps in a new snapshot.
func (h *Holder) Store(s *Snapshot) {
	h.p.Store(s)
}
