package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hyperjump/osusume/internal/models"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.db")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}

	ctx := context.Background()
	inserted := []models.Record{
		{PlaceID: "a", PlaceName: "Alpha", City: "Oslo", MainCategory: "Pizza Restaurant", Rating: 5, ReviewText: "great", PublishedAt: "2025-01-15"},
		{PlaceID: "a", PlaceName: "Alpha", City: "Oslo", MainCategory: "Pizza Restaurant", Rating: 2},
		{PlaceID: "b", PlaceName: "Beta", City: "Bergen", MainCategory: "Sushi Bar", Rating: 4, ReviewText: "fresh"},
	}
	for i := range inserted {
		if err := store.InsertRecord(ctx, &inserted[i]); err != nil {
			t.Fatalf("InsertRecord %d: %v", i, err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0].PlaceName != "Alpha" || records[0].ReviewText != "great" {
		t.Errorf("first record: %+v", records[0])
	}
	if records[0].ReviewCount != 2 || records[2].ReviewCount != 1 {
		t.Errorf("counts not derived: %d, %d", records[0].ReviewCount, records[2].ReviewCount)
	}
}

func TestOpenStoreCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "reviews.db")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	_ = store.Close()
}
