package store

import (
	"database/sql"
	"fmt"
	"time"
)

type HistoryItem struct {
	Key         string
	Frequency   int
	LastVisited time.Time
}

// RecordVisit bumps the frequency and last_visited timestamp of a committed
// result. It inserts the key if it doesn't exist.
func RecordVisit(db *sql.DB, key string) error {
	query := `
		INSERT INTO history (key, frequency, last_visited)
		VALUES (?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			frequency = frequency + 1,
			last_visited = CURRENT_TIMESTAMP
	`
	_, err := db.Exec(query, key)
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// GetRecentHistory returns the most recently visited keys, newest first.
func GetRecentHistory(db *sql.DB, limit int) ([]HistoryItem, error) {
	query := `SELECT key, frequency, last_visited FROM history ORDER BY last_visited DESC, id DESC LIMIT ?`
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent history: %w", err)
	}
	defer rows.Close()

	var items []HistoryItem
	for rows.Next() {
		var item HistoryItem
		if err := rows.Scan(&item.Key, &item.Frequency, &item.LastVisited); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// RecordQuery remembers a query that led to a commit.
func RecordQuery(db *sql.DB, q string) error {
	if _, err := db.Exec(`INSERT INTO queries (query) VALUES (?)`, q); err != nil {
		return fmt.Errorf("failed to record query: %w", err)
	}
	return nil
}

// LastQuery returns the most recently recorded query, or "" if none.
func LastQuery(db *sql.DB) (string, error) {
	var q string
	err := db.QueryRow(`SELECT query FROM queries ORDER BY id DESC LIMIT 1`).Scan(&q)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get last query: %w", err)
	}
	return q, nil
}
