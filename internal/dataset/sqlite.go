package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/osusume/internal/models"
)

// Store is a SQLite-backed review store. It is the ingest target for review
// scrapers and an alternative dataset source to flat CSV/XLSX files.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates a SQLite database at dbPath and initializes the
// schema. Parent directories are created if they do not exist.
func OpenStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS reviews (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		place_id TEXT NOT NULL,
		place_name TEXT NOT NULL,
		city TEXT,
		main_category TEXT,
		all_categories TEXT,
		rating INTEGER NOT NULL,
		review_text TEXT,
		published_at_date TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_reviews_place_id ON reviews(place_id);
	CREATE INDEX IF NOT EXISTS idx_reviews_city ON reviews(city);
	`
	_, err := db.Exec(schema)
	return err
}

// InsertRecord appends one review record.
func (s *Store) InsertRecord(ctx context.Context, r *models.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (place_id, place_name, city, main_category, all_categories, rating, review_text, published_at_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.PlaceID, r.PlaceName, r.City, r.MainCategory, r.AllCategories, r.Rating, r.ReviewText, r.PublishedAt,
	)
	return err
}

// LoadRecords returns all review records in insertion order. ReviewCount is
// left for the caller to derive.
func (s *Store) LoadRecords(ctx context.Context) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT place_id, place_name, COALESCE(city, ''), COALESCE(main_category, ''),
		        COALESCE(all_categories, ''), rating, COALESCE(review_text, ''), COALESCE(published_at_date, '')
		 FROM reviews ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.PlaceID, &r.PlaceName, &r.City, &r.MainCategory,
			&r.AllCategories, &r.Rating, &r.ReviewText, &r.PublishedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func loadSQLite(path string) ([]models.Record, error) {
	store, err := OpenStore(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.LoadRecords(context.Background())
}
