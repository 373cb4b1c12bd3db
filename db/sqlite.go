package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Record is one prediction written to the history table.
type Record struct {
	ID        int64     `json:"id"`
	Model     string    `json:"model"`
	Features  []float64 `json:"features"`
	Value     float64   `json:"value"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps an append-only prediction history. Predictions never read it.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("history path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	database, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database failed: %w", err)
	}
	database.SetMaxOpenConns(1)

	query := `
    CREATE TABLE IF NOT EXISTS predictions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        model VARCHAR(20) NOT NULL,
        features TEXT NOT NULL,
        value REAL NOT NULL,
        result VARCHAR(50) NOT NULL,
        created_at DATETIME NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions(created_at);
    `
	if _, err := database.Exec(query); err != nil {
		database.Close()
		return nil, fmt.Errorf("create tables failed: %w", err)
	}
	return &Store{db: database}, nil
}

// SavePrediction appends a prediction record
func (s *Store) SavePrediction(ctx context.Context, record Record) error {
	features, err := json.Marshal(record.Features)
	if err != nil {
		return err
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO predictions (model, features, value, result, created_at)
        VALUES (?, ?, ?, ?, ?)`,
		record.Model, string(features), record.Value, record.Result, record.CreatedAt.UTC())
	return err
}

// RecentPredictions returns the newest records first
func (s *Store) RecentPredictions(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, model, features, value, result, created_at
        FROM predictions
        ORDER BY id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0, limit)
	for rows.Next() {
		var r Record
		var features string
		if err := rows.Scan(&r.ID, &r.Model, &features, &r.Value, &r.Result, &r.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(features), &r.Features); err != nil {
			return nil, fmt.Errorf("decode features of record %d: %w", r.ID, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
