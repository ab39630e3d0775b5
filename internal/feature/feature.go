// Package feature derives per-record features: review-text imputation,
// recency decay, and the combined text used for vectorization.
package feature

import (
	"math"
	"strings"
	"time"

	"github.com/hyperjump/osusume/internal/models"
)

// recencyScale is the decay scale of the recency score, in days. A review
// published 30 days ago scores 1/e; one from 90 days ago scores about 0.05.
const recencyScale = 30.0

// publishedAtLayouts are the timestamp layouts accepted for the publish date.
// Dataset snapshots mix ISO timestamps with bare dates.
var publishedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ImputeReviewText returns r with a placeholder review text substituted when
// the review text is missing or blank. The placeholder is keyed by rating so
// the vector space still carries a sentiment signal for text-less reviews:
// 4-5 "very good", 3 "good", 2 "bad", anything else "very bad".
// After this step ReviewText is always non-empty.
func ImputeReviewText(r models.Record) models.Record {
	if strings.TrimSpace(r.ReviewText) != "" {
		return r
	}
	switch r.Rating {
	case 4, 5:
		r.ReviewText = "very good"
	case 3:
		r.ReviewText = "good"
	case 2:
		r.ReviewText = "bad"
	default:
		r.ReviewText = "very bad"
	}
	return r
}

// RecencyScore returns e^(-days/30) for the given publish timestamp, where
// days is the age relative to now. Future dates score exactly 1.0. A missing
// or unparseable timestamp scores 0; this fallback is deliberate and the
// function never returns an error.
func RecencyScore(publishedAt string, now time.Time) float64 {
	t, ok := parsePublishedAt(publishedAt)
	if !ok {
		return 0
	}
	days := now.Sub(t).Hours() / 24
	if days < 0 {
		return 1.0
	}
	return math.Exp(-days / recencyScale)
}

func parsePublishedAt(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range publishedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CombineText joins the (already imputed) review text with the main category,
// separated by a single space. Blending the review with the category keyword
// lets category-agnostic queries still match on cuisine terms.
func CombineText(r models.Record) string {
	return r.ReviewText + " " + r.MainCategory
}

// Featurize maps each record independently to a FeaturizedRecord. The mapping
// is pure: it reads only the record and now, so callers may batch or
// parallelize it freely. Cluster labels are left unassigned.
func Featurize(records []models.Record, now time.Time) []models.FeaturizedRecord {
	out := make([]models.FeaturizedRecord, len(records))
	for i, r := range records {
		r = ImputeReviewText(r)
		out[i] = models.FeaturizedRecord{
			Record:       r,
			RecencyScore: RecencyScore(r.PublishedAt, now),
			CombinedText: CombineText(r),
			Cluster:      models.ClusterUnassigned,
		}
	}
	return out
}
