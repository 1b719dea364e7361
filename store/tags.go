package store

import (
	"database/sql"
	"fmt"

	"github.com/montrey/sift/search"
)

// AddTag attaches a user tag to a unit key.
func AddTag(db *sql.DB, tagName, key string) error {
	query := `INSERT OR IGNORE INTO tags (name, key) VALUES (?, ?)`
	_, err := db.Exec(query, tagName, key)
	if err != nil {
		return fmt.Errorf("failed to add tag: %w", err)
	}
	return nil
}

// RemoveTag detaches a user tag from a unit key.
func RemoveTag(db *sql.DB, tagName, key string) error {
	query := `DELETE FROM tags WHERE name = ? AND key = ?`
	_, err := db.Exec(query, tagName, key)
	if err != nil {
		return fmt.Errorf("failed to remove tag: %w", err)
	}
	return nil
}

// GetKeysForTag returns all keys carrying a tag.
func GetKeysForTag(db *sql.DB, tagName string) ([]string, error) {
	return queryStrings(db, `SELECT key FROM tags WHERE name = ? ORDER BY key`, tagName)
}

// GetTagsForKey returns the user tags of a key.
func GetTagsForKey(db *sql.DB, key string) ([]string, error) {
	return queryStrings(db, `SELECT name FROM tags WHERE key = ? ORDER BY name`, key)
}

// GetAllTags returns every distinct tag name.
func GetAllTags(db *sql.DB) ([]string, error) {
	return queryStrings(db, `SELECT DISTINCT name FROM tags ORDER BY name`)
}

// ApplyTags appends user tags to the tags units already carry, so they are
// searchable like frontmatter tags.
func ApplyTags(db *sql.DB, units []search.Unit) error {
	rows, err := db.Query(`SELECT key, name FROM tags ORDER BY name`)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	defer rows.Close()

	byKey := map[string][]string{}
	for rows.Next() {
		var key, name string
		if err := rows.Scan(&key, &name); err != nil {
			return err
		}
		byKey[key] = append(byKey[key], name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range units {
		for _, tag := range byKey[units[i].Key] {
			if !contains(units[i].Tags, tag) {
				units[i].Tags = append(units[i].Tags, tag)
			}
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func queryStrings(db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
