package models

// DefaultLimit is the number of recommendations returned when the request
// does not specify one.
const DefaultLimit = 5

// MaxLimit caps the number of recommendations a single request may ask for.
const MaxLimit = 50

// RecommendationRequest is a scoring request with optional filters.
type RecommendationRequest struct {
	// Query is free text matched against the combined review/category text.
	// An empty query is allowed; it contributes zero similarity, so ranking
	// falls back to rating, recency, and category match.
	Query string `json:"query"`
	// City filters candidates by exact, case-insensitive city match.
	City string `json:"city,omitempty"`
	// Category contributes to scoring as a case-insensitive substring match
	// against the candidate's main category. It never excludes candidates.
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// Validate normalizes the request limit. It never rejects the request: an
// empty query is valid and scores zero similarity everywhere.
func (r *RecommendationRequest) Validate() error {
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	return nil
}
