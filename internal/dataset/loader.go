// Package dataset loads place-review records from CSV, XLSX, or SQLite
// sources and derives per-place review counts.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hyperjump/osusume/internal/models"
)

// Load reads records from path, dispatching on the file extension:
// .csv, .xlsx, or .db/.sqlite (a reviews table, see Store). When the source
// carries no review_count column, counts are derived by grouping on place_id.
func Load(path string) ([]models.Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("dataset not found at %s: %w", path, err)
	}

	var (
		records []models.Record
		counted bool
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		records, counted, err = loadCSV(path)
	case ".xlsx":
		records, counted, err = loadXLSX(path)
	case ".db", ".sqlite":
		records, err = loadSQLite(path)
		counted = false
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if !counted {
		DeriveReviewCounts(records)
	}
	return records, nil
}

// DeriveReviewCounts sets each record's ReviewCount to the number of records
// sharing its PlaceID within the slice.
func DeriveReviewCounts(records []models.Record) {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.PlaceID]++
	}
	for i := range records {
		records[i].ReviewCount = counts[records[i].PlaceID]
	}
}

func loadCSV(path string) ([]models.Record, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read CSV: %w", err)
	}
	return parseRows(rows)
}

// parseRows converts a header row plus data rows into records. The header
// names columns; order does not matter. Ratings that fail to parse are an
// error rather than a silent zero.
func parseRows(rows [][]string) ([]models.Record, bool, error) {
	if len(rows) == 0 {
		return nil, false, fmt.Errorf("dataset has no header row")
	}
	col := make(map[string]int)
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"place_id", "place_name", "city", "main_category", "rating"} {
		if _, ok := col[required]; !ok {
			return nil, false, fmt.Errorf("dataset missing required column %q", required)
		}
	}
	_, hasCount := col["review_count"]

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]models.Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		rating, err := strconv.Atoi(field(row, "rating"))
		if err != nil {
			return nil, false, fmt.Errorf("row %d: invalid rating %q", n+2, field(row, "rating"))
		}
		rec := models.Record{
			PlaceID:       field(row, "place_id"),
			PlaceName:     field(row, "place_name"),
			City:          field(row, "city"),
			MainCategory:  field(row, "main_category"),
			AllCategories: field(row, "all_categories"),
			Rating:        rating,
			ReviewText:    field(row, "review_text"),
			PublishedAt:   field(row, "published_at_date"),
		}
		if hasCount {
			if c, err := strconv.Atoi(field(row, "review_count")); err == nil {
				rec.ReviewCount = c
			}
		}
		records = append(records, rec)
	}
	return records, hasCount, nil
}
