package scoring

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hyperjump/osusume/internal/config"
	"github.com/hyperjump/osusume/internal/models"
	"github.com/hyperjump/osusume/internal/tfidf"
)

// ErrNoCandidates is returned when no record survives the city filter. It is
// a user-facing "not found", distinct from a query that merely scores zero.
var ErrNoCandidates = errors.New("scoring: no candidates match the requested filters")

// neutralCategoryMatch is the category score used when the request carries no
// category filter: no preference, no penalty.
const neutralCategoryMatch = 0.5

// ratingScale is the maximum rating; ratings are normalized to [0,1] by it.
const ratingScale = 5.0

// Recommender computes composite relevance scores over a snapshot and
// returns a ranked, deduplicated top-K place list. It holds only weights and
// is safe for concurrent use.
type Recommender struct {
	weights config.ScoringConfig
}

// NewRecommender creates a recommender with the given scoring weights.
func NewRecommender(weights config.ScoringConfig) *Recommender {
	return &Recommender{weights: weights}
}

type candidate struct {
	index     int
	composite float64
}

// Recommend scores every candidate in snap against req and returns up to
// req.Limit distinct places, best first. A request without a limit gets the
// configured top-K default.
//
// Composite score per candidate:
//
//	w_sim*cosine(query, doc) + w_rating*rating/5 + w_recency*recency + w_cat*categoryMatch
//
// The sort is stable, so candidates with equal scores keep their dataset
// order; that input order is the documented tie-break. A place with several
// reviews is collapsed to its highest-scoring review, because the result is
// a place list, not a review list.
func (rec *Recommender) Recommend(snap *Snapshot, req *models.RecommendationRequest) ([]*models.Recommendation, error) {
	if req.Limit <= 0 && rec.weights.TopK > 0 {
		req.Limit = rec.weights.TopK
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	indices := filterByCity(snap.Records, req.City)
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: city %q", ErrNoCandidates, req.City)
	}

	// An empty query projects to the zero vector and contributes 0
	// similarity everywhere, leaving a pure rating/recency/category ranking.
	queryRows, err := snap.Vectorizer.Transform([]string{req.Query})
	if err != nil {
		return nil, err
	}
	queryVec := queryRows[0]

	category := strings.ToLower(req.Category)
	candidates := make([]candidate, 0, len(indices))
	for _, i := range indices {
		r := snap.Records[i]
		similarity := tfidf.Cosine(queryVec, snap.Matrix[i])
		composite := rec.weights.SimilarityWeight*similarity +
			rec.weights.RatingWeight*float64(r.Rating)/ratingScale +
			rec.weights.RecencyWeight*r.RecencyScore +
			rec.weights.CategoryWeight*categoryMatch(r.MainCategory, category)
		candidates = append(candidates, candidate{index: i, composite: composite})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].composite > candidates[b].composite
	})

	results := make([]*models.Recommendation, 0, req.Limit)
	seen := make(map[string]bool)
	for _, c := range candidates {
		r := snap.Records[c.index]
		if seen[r.PlaceName] {
			continue
		}
		seen[r.PlaceName] = true
		results = append(results, &models.Recommendation{
			PlaceName:      r.PlaceName,
			City:           r.City,
			MainCategory:   r.MainCategory,
			Rating:         r.Rating,
			RecencyScore:   r.RecencyScore,
			CompositeScore: c.composite,
			Rank:           len(results) + 1,
		})
		if len(results) >= req.Limit {
			break
		}
	}
	return results, nil
}

// filterByCity returns the indices of records matching city, case-insensitively.
// An empty city matches everything.
func filterByCity(records []models.FeaturizedRecord, city string) []int {
	indices := make([]int, 0, len(records))
	if city == "" {
		for i := range records {
			indices = append(indices, i)
		}
		return indices
	}
	want := strings.ToLower(city)
	for i, r := range records {
		if strings.ToLower(r.City) == want {
			indices = append(indices, i)
		}
	}
	return indices
}

// categoryMatch scores how a candidate's main category relates to the
// requested category (already lowercased): 1.0 for a substring hit, 0.0 for a
// miss, and the neutral constant when no category was requested.
func categoryMatch(mainCategory, requested string) float64 {
	if requested == "" {
		return neutralCategoryMatch
	}
	if strings.Contains(strings.ToLower(mainCategory), requested) {
		return 1.0
	}
	return 0.0
}
