package trainer

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/osusume/internal/artifact"
	"github.com/hyperjump/osusume/internal/config"
	"github.com/hyperjump/osusume/internal/models"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

func featurizedDataset(n int) []models.FeaturizedRecord {
	records := make([]models.FeaturizedRecord, n)
	for i := range records {
		records[i] = models.FeaturizedRecord{
			Record: models.Record{
				PlaceID:     "p",
				Rating:      i%5 + 1,
				ReviewCount: i%7 + 1,
			},
			Cluster: i % 3,
		}
	}
	return records
}

func newTestTrainer(t *testing.T) *Trainer {
	t.Helper()
	dir := t.TempDir()
	store := artifact.NewStore(dir, dir)
	return NewTrainer(testConfig(), store, zap.NewNop())
}

func TestTrainPersistRoundTrip(t *testing.T) {
	tr := newTestTrainer(t)
	records := featurizedDataset(40)

	model, path, err := tr.Train(records, nil)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if path == "" {
		t.Fatal("empty artifact path")
	}

	loaded, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	probes := [][]float64{
		{0, 5, 3}, {1, 1, 1}, {2, 3, 7}, {0, 4, 2},
	}
	for _, probe := range probes {
		if got, want := loaded.Predict(probe), model.Predict(probe); got != want {
			t.Errorf("reloaded model predicts %v, in-memory %v for %v", got, want, probe)
		}
	}
}

func TestTrainProxyTargetPreservesRatingOrder(t *testing.T) {
	tr := newTestTrainer(t)
	model, _, err := tr.Train(featurizedDataset(50), nil)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	// With the rating/5 proxy, a high-rating row must outrank a low-rating
	// row with otherwise identical features.
	hi := model.Predict([]float64{1, 5, 3})
	lo := model.Predict([]float64{1, 1, 3})
	if hi <= lo {
		t.Errorf("rating 5 predicted %v, rating 1 predicted %v", hi, lo)
	}
}

func TestTrainExplicitRelevance(t *testing.T) {
	tr := newTestTrainer(t)
	records := featurizedDataset(20)
	relevance := make([]float64, len(records))
	for i := range relevance {
		relevance[i] = float64(i) / float64(len(relevance))
	}
	if _, _, err := tr.Train(records, relevance); err != nil {
		t.Fatalf("Train with explicit relevance: %v", err)
	}
	if _, _, err := tr.Train(records, relevance[:3]); err == nil {
		t.Error("mismatched relevance length should error")
	}
}

func TestTrainMissingColumns(t *testing.T) {
	tr := newTestTrainer(t)

	t.Run("unassigned cluster", func(t *testing.T) {
		records := featurizedDataset(10)
		records[4].Cluster = models.ClusterUnassigned
		if _, _, err := tr.Train(records, nil); !errors.Is(err, ErrMissingColumns) {
			t.Errorf("got %v, want ErrMissingColumns", err)
		}
	})

	t.Run("missing review count", func(t *testing.T) {
		records := featurizedDataset(10)
		records[2].ReviewCount = 0
		if _, _, err := tr.Train(records, nil); !errors.Is(err, ErrMissingColumns) {
			t.Errorf("got %v, want ErrMissingColumns", err)
		}
	})

	t.Run("empty dataset", func(t *testing.T) {
		if _, _, err := tr.Train(nil, nil); err == nil {
			t.Error("expected error")
		}
	})
}

func TestTrainDeterministicSplit(t *testing.T) {
	trainA, valA := split(10, 42)
	trainB, valB := split(10, 42)
	if len(trainA) != 8 || len(valA) != 2 {
		t.Fatalf("split sizes: %d train, %d val", len(trainA), len(valA))
	}
	for i := range trainA {
		if trainA[i] != trainB[i] {
			t.Fatal("same seed produced different train split")
		}
	}
	for i := range valA {
		if valA[i] != valB[i] {
			t.Fatal("same seed produced different validation split")
		}
	}
}
