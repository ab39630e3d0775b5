package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/osusume/internal/models"
)

// loadXLSX reads records from the first sheet of an XLSX workbook. The sheet
// is expected to have the same header row as the CSV format.
func loadXLSX(path string) ([]models.Record, bool, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, false, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, false, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return parseRows(rows)
}
