package trainer

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/hyperjump/osusume/internal/artifact"
	"github.com/hyperjump/osusume/internal/config"
	"github.com/hyperjump/osusume/internal/models"
)

// ErrMissingColumns is returned when the dataset lacks a required training
// feature. The job aborts rather than train on wrong features; only the
// target has a proxy fallback.
var ErrMissingColumns = errors.New("trainer: dataset missing required training columns")

// Trainer fits the ranking model and persists it through the artifact store.
type Trainer struct {
	booster config.BoosterConfig
	model   config.ModelConfig
	seed    int64
	store   *artifact.Store
	logger  *zap.Logger
}

// NewTrainer creates a trainer from config with the given artifact store.
func NewTrainer(cfg *config.Config, store *artifact.Store, logger *zap.Logger) *Trainer {
	return &Trainer{
		booster: cfg.Training.Booster,
		model:   cfg.Model,
		seed:    cfg.Training.Seed,
		store:   store,
		logger:  logger,
	}
}

// Train fits the ranker over the featurized dataset and persists the
// artifact, returning the fitted model and the artifact path.
//
// relevance is the per-record target; pass nil to synthesize the rating/5
// proxy (a heuristic stand-in, not ground truth). Records are split 80/20
// into train/validation with a seeded shuffle so runs are reproducible. The
// whole training split is treated as one ranking group: no per-query
// grouping exists offline, so the booster optimizes the global target
// ordering, which for a single group reduces to regressing the target.
func (t *Trainer) Train(records []models.FeaturizedRecord, relevance []float64) (*RankerModel, string, error) {
	if len(records) == 0 {
		return nil, "", fmt.Errorf("trainer: cannot train on an empty dataset")
	}
	if relevance != nil && len(relevance) != len(records) {
		return nil, "", fmt.Errorf("trainer: relevance length %d does not match %d records", len(relevance), len(records))
	}

	features := make([][]float64, len(records))
	target := make([]float64, len(records))
	for i, r := range records {
		if r.Cluster == models.ClusterUnassigned {
			return nil, "", fmt.Errorf("%w: cluster not assigned (run the feature pipeline first)", ErrMissingColumns)
		}
		if r.ReviewCount == 0 {
			return nil, "", fmt.Errorf("%w: review_count not derived", ErrMissingColumns)
		}
		features[i] = []float64{float64(r.Cluster), float64(r.Rating), float64(r.ReviewCount)}
		if relevance != nil {
			target[i] = relevance[i]
		} else {
			target[i] = float64(r.Rating) / 5.0
		}
	}

	trainIdx, valIdx := split(len(records), t.seed)
	trainFeatures := make([][]float64, len(trainIdx))
	trainTarget := make([]float64, len(trainIdx))
	for i, idx := range trainIdx {
		trainFeatures[i] = features[idx]
		trainTarget[i] = target[idx]
	}

	model := fitBoosted(trainFeatures, trainTarget, t.booster.Rounds, t.booster.LearningRate, t.booster.MaxDepth)

	metrics := map[string]float64{}
	if len(valIdx) > 0 {
		rmse := validationRMSE(model, features, target, valIdx)
		metrics["val_rmse"] = rmse
		t.logger.Info("ranker validation",
			zap.Float64("rmse", rmse),
			zap.Int("train_rows", len(trainIdx)),
			zap.Int("val_rows", len(valIdx)),
		)
	}

	payload, err := model.Marshal()
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize model: %w", err)
	}
	path, err := t.store.SaveModel(t.model.Name, t.model.Version, payload)
	if err != nil {
		return nil, "", err
	}
	if err := t.store.AppendRun(&artifact.RunEntry{
		Model:        t.model.Name,
		Version:      t.model.Version,
		ArtifactPath: path,
		Metrics:      metrics,
	}); err != nil {
		return nil, "", err
	}

	t.logger.Info("model saved", zap.String("path", path))
	return model, path, nil
}

// split shuffles row indices with a seeded source and carves off 20% for
// validation. At least one row always stays in the training split.
func split(n int, seed int64) (train, val []int) {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)
	nTrain := (n * 4) / 5
	if nTrain < 1 {
		nTrain = 1
	}
	return perm[:nTrain], perm[nTrain:]
}

func validationRMSE(model *RankerModel, features [][]float64, target []float64, indices []int) float64 {
	var sse float64
	for _, i := range indices {
		d := model.Predict(features[i]) - target[i]
		sse += d * d
	}
	return math.Sqrt(sse / float64(len(indices)))
}
