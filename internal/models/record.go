// Package models defines core data structures for records, requests, and recommendations.
package models

// Record represents one place-review pair from the dataset.
// A place appears once per review, so PlaceID is not unique across records.
type Record struct {
	PlaceID       string `json:"place_id"`
	PlaceName     string `json:"place_name"`
	City          string `json:"city"`
	MainCategory  string `json:"main_category"`
	AllCategories string `json:"all_categories,omitempty"`
	Rating        int    `json:"rating"`
	// ReviewText is empty when the review has no text; the feature builder
	// imputes a placeholder before vectorization.
	ReviewText string `json:"review_text,omitempty"`
	// PublishedAt is the raw timestamp string from the source. Parsing is
	// deferred to recency scoring, which treats unparseable values as score 0.
	PublishedAt string `json:"published_at_date,omitempty"`
	// ReviewCount is the number of records sharing this record's PlaceID
	// within the loaded snapshot. Derived by the loader when the source
	// does not carry it.
	ReviewCount int `json:"review_count"`
}

// ClusterUnassigned is the cluster label of a featurized record before the
// clusterer has run.
const ClusterUnassigned = -1

// FeaturizedRecord is a Record plus derived features. Instances are built once
// per load cycle and are immutable afterward; a reload rebuilds them all.
type FeaturizedRecord struct {
	Record
	// RecencyScore is in (0,1]; 0 when the publish date is missing or unparseable.
	RecencyScore float64 `json:"recency_score"`
	// CombinedText is the imputed review text joined with the main category.
	// It is the unit of vectorization.
	CombinedText string `json:"combined_text"`
	// Cluster is the label assigned by the clusterer, or ClusterUnassigned.
	Cluster int `json:"cluster"`
}
