// Package cli provides CLI output utilities for Osusume.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/osusume/internal/models"
	"github.com/hyperjump/osusume/pkg/utils"
)

// OutputFormat is the format for recommendation output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteRecommendations writes recommendations to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteRecommendations(w io.Writer, response *models.RecommendationResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeRecommendationsText(w, response)
		return nil
	}
}

func writeRecommendationsText(w io.Writer, response *models.RecommendationResponse) {
	fmt.Fprintf(w, "\nFound %d recommendations in %dms\n\n", len(response.Results), response.QueryTime)
	for _, rec := range response.Results {
		fmt.Fprintf(w, "%2d. %s (%s)\n", rec.Rank, rec.PlaceName, rec.City)
		fmt.Fprintf(w, "    %s | rating %d/5 | recency %.3f | score %.4f\n",
			utils.Truncate(rec.MainCategory, 60), rec.Rating, rec.RecencyScore, rec.CompositeScore)
	}
	fmt.Fprintln(w)
}
