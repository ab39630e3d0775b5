package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const sampleCSV = `place_id,place_name,city,main_category,rating,review_text,published_at_date
a,Alpha,Oslo,Pizza Restaurant,5,great slices,2025-01-15
a,Alpha,Oslo,Pizza Restaurant,3,,2025-02-01
b,Beta,Bergen,Sushi Bar,4,fresh fish,
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	records, err := Load(writeTemp(t, "reviews.csv", sampleCSV))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0].PlaceName != "Alpha" || records[0].Rating != 5 {
		t.Errorf("first record: %+v", records[0])
	}
	if records[1].ReviewText != "" {
		t.Errorf("missing review text should stay empty at load time: %q", records[1].ReviewText)
	}

	t.Run("review counts derived by place", func(t *testing.T) {
		if records[0].ReviewCount != 2 || records[1].ReviewCount != 2 {
			t.Errorf("Alpha counts: %d, %d, want 2", records[0].ReviewCount, records[1].ReviewCount)
		}
		if records[2].ReviewCount != 1 {
			t.Errorf("Beta count: %d, want 1", records[2].ReviewCount)
		}
	})
}

func TestLoadCSVExplicitReviewCount(t *testing.T) {
	csv := `place_id,place_name,city,main_category,rating,review_count
a,Alpha,Oslo,Cafe,4,9
`
	records, err := Load(writeTemp(t, "reviews.csv", csv))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if records[0].ReviewCount != 9 {
		t.Errorf("explicit count overridden: %d", records[0].ReviewCount)
	}
}

func TestLoadCSVMissingColumn(t *testing.T) {
	csv := "place_id,place_name,rating\na,Alpha,4\n"
	_, err := Load(writeTemp(t, "reviews.csv", csv))
	if err == nil || !strings.Contains(err.Error(), "city") {
		t.Errorf("got %v, want missing column error", err)
	}
}

func TestLoadCSVBadRating(t *testing.T) {
	csv := "place_id,place_name,city,main_category,rating\na,Alpha,Oslo,Cafe,five\n"
	if _, err := Load(writeTemp(t, "reviews.csv", csv)); err == nil {
		t.Error("non-numeric rating should error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("expected error for missing dataset")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	if _, err := Load(writeTemp(t, "reviews.parquet", "x")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"place_id", "place_name", "city", "main_category", "rating", "review_text"},
		{"a", "Alpha", "Oslo", "Pizza Restaurant", 5, "great slices"},
		{"a", "Alpha", "Oslo", "Pizza Restaurant", 2, "cold"},
	}
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0].PlaceName != "Alpha" || records[0].Rating != 5 {
		t.Errorf("first record: %+v", records[0])
	}
	if records[0].ReviewCount != 2 {
		t.Errorf("derived count: %d", records[0].ReviewCount)
	}
}
