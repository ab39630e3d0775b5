package models

// Recommendation is a single ranked place with its composite score and the
// raw fields that contributed to it.
type Recommendation struct {
	PlaceName      string  `json:"place_name"`
	City           string  `json:"city"`
	MainCategory   string  `json:"main_category"`
	Rating         int     `json:"rating"`
	RecencyScore   float64 `json:"recency_score"`
	CompositeScore float64 `json:"composite_score"`
	Rank           int     `json:"rank"`
}

// RecommendationResponse is the response for a recommendation request.
type RecommendationResponse struct {
	Results   []*Recommendation `json:"results"`
	Query     string            `json:"query"`
	QueryTime int64             `json:"query_time_ms"`
}
